package model

import "time"

// Student is an account holder affiliated with exactly one institution.
type Student struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:256;not null" json:"name"`
	OwnerAddress  string    `gorm:"size:128;not null;index" json:"ownerAddress"`
	InstitutionID string    `gorm:"size:36;not null;index" json:"institutionId"`
	Balance       int64     `gorm:"not null" json:"balance"`
	Version       int64     `gorm:"not null" json:"-"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}
