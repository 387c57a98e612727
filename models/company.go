package models

import "time"

// Company owns bounties, board bounties and events. Deleting a company removes them.
type Company struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null;index" json:"name"`
	Email       string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Events   []Event  `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Bounties []Bounty `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`

	BoardBounties []BoardBounty `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// CompanySummary is embedded in event and bounty responses.
type CompanySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
