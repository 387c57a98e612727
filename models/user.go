// models/user.go
package models

import "time"

const (
	RoleTalent  = "TALENT"
	RoleCompany = "COMPANY"
)

// User is a talent account. XP and Balance only ever grow through bounty awards.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null;index" json:"username"`
	Email     string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	XP        int64     `gorm:"column:xp;not null;default:0" json:"xp"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	Role      string    `gorm:"size:20;not null;default:'TALENT'" json:"role"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Posts              []Post              `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EventRegistrations []EventRegistration `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BountyAssignments  []BountyAssignment  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserSummary is the public slice of a user embedded in other responses.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
