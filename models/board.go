package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BoardBountyActive = "active"

	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// BoardBounty is the job-board style bounty: free-text company name, applications
// instead of claims, no reward distribution. CompanyID is the posting company
// and the only one allowed to change it.
type BoardBounty struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	Title        string                      `gorm:"size:200;not null" json:"title"`
	Slug         string                      `gorm:"size:220;index" json:"slug"`
	CompanyID    uint                        `gorm:"not null;index" json:"companyId"`
	Company      string                      `gorm:"size:150;not null;index" json:"company"`
	Deadline     time.Time                   `gorm:"not null" json:"deadline"`
	RewardXP     int64                       `gorm:"column:reward_xp;not null;default:0" json:"rewardXp"`
	RewardMoney  int64                       `gorm:"not null;default:0" json:"rewardMoney"`
	Status       string                      `gorm:"size:20;not null;default:'active'" json:"status"`
	Description  *string                     `gorm:"type:text" json:"description"`
	Requirements datatypes.JSONSlice[string] `json:"requirements"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`

	Applications []Application `json:"-" gorm:"foreignKey:BoardBountyID;constraint:OnDelete:CASCADE"`

	ApplicationCount int64 `gorm:"-" json:"applicationCount"`
}

func (b *BoardBounty) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type Application struct {
	ID             string                      `gorm:"primaryKey;size:36" json:"id"`
	BoardBountyID  string                      `gorm:"size:36;not null;index" json:"bountyId"`
	UserID         *uint                       `gorm:"index" json:"userId"`
	PortfolioLinks datatypes.JSONSlice[string] `json:"portfolioLinks"`
	CVImageURL     string                      `gorm:"column:cv_image_url;size:500;not null" json:"cvImageUrl"`
	WhyHireYou     string                      `gorm:"type:text;not null" json:"whyHireYou"`
	Status         string                      `gorm:"size:20;not null;default:'pending'" json:"status"`
	SubmittedAt    time.Time                   `gorm:"autoCreateTime" json:"submittedAt"`

	Bounty *BoardBounty `json:"bounty,omitempty" gorm:"foreignKey:BoardBountyID"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
