package models

import "time"

// Event is a company-run event with a fixed registration quota.
type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	EventDate       time.Time `gorm:"not null;index" json:"event_date"`
	CompanyID       uint      `gorm:"not null;index" json:"company_id"`
	RegisteredQuota int       `gorm:"not null;check:registered_quota > 0" json:"registered_quota"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Company       Company             `json:"-" gorm:"foreignKey:CompanyID"`
	Registrations []EventRegistration `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// EventRegistration is unique per (user, event).
type EventRegistration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_registration_user_event" json:"user_id"`
	EventID      uint      `gorm:"not null;uniqueIndex:idx_registration_user_event;index" json:"event_id"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Event Event `json:"-" gorm:"foreignKey:EventID"`
}
