// models/bounty.go
package models

import "time"

type BountyStatus string

const (
	BountyOpen      BountyStatus = "OPEN"
	BountyClosed    BountyStatus = "CLOSED"
	BountyCompleted BountyStatus = "COMPLETED"
)

// Bounty is a paid task posted by a company. It moves OPEN -> COMPLETED once,
// when a winner is selected; WinnerID is written only at that transition.
type Bounty struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Slug        string       `gorm:"size:220;index" json:"slug"`
	Description *string      `gorm:"type:text" json:"description"`
	CompanyID   uint         `gorm:"not null;index" json:"company_id"`
	Deadline    time.Time    `gorm:"not null;index" json:"deadline"`
	RewardXP    int64        `gorm:"column:reward_xp;not null;default:0" json:"rewardXp"`
	RewardMoney int64        `gorm:"not null;default:0" json:"rewardMoney"`
	Status      BountyStatus `gorm:"size:20;not null;default:'OPEN';index" json:"status"`
	WinnerID    *uint        `gorm:"index" json:"winner_id"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Company     Company            `json:"company" gorm:"foreignKey:CompanyID"`
	Assignments []BountyAssignment `json:"-" gorm:"foreignKey:BountyID;constraint:OnDelete:CASCADE"`

	// Computed per request
	IsOwner    bool  `gorm:"-" json:"isOwner"`
	ClaimCount int64 `gorm:"-" json:"claimCount"`
}

// BountyAssignment is a user's claim on a bounty, one per (user, bounty).
type BountyAssignment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex:idx_assignment_user_bounty" json:"user_id"`
	BountyID        uint       `gorm:"not null;uniqueIndex:idx_assignment_user_bounty;index" json:"bounty_id"`
	AssignedAt      time.Time  `gorm:"autoCreateTime" json:"assigned_at"`
	SubmissionURL   *string    `gorm:"column:submission_url;size:500" json:"submissionUrl"`
	SubmissionNotes *string    `gorm:"type:text" json:"submissionNotes"`
	IsCompleted     bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at"`
	IsWinner        bool       `gorm:"not null;default:false" json:"is_winner"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Bounty *Bounty `json:"bounty,omitempty" gorm:"foreignKey:BountyID"`
}

// Submitted reports whether a non-empty submission URL is on file.
func (a BountyAssignment) Submitted() bool {
	return a.SubmissionURL != nil && *a.SubmissionURL != ""
}
