package model

import "time"

// Institution owns hostel rooms, collects fees and authorizes bookings.
type Institution struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:256;not null" json:"name"`
	OwnerAddress string    `gorm:"size:128;not null;index" json:"ownerAddress"`
	Balance      int64     `gorm:"not null" json:"balance"`
	Version      int64     `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

// FeeEntry is one row of an institution's fee table: the fee a student paid.
type FeeEntry struct {
	InstitutionID string    `gorm:"primaryKey;size:36" json:"institutionId"`
	StudentID     string    `gorm:"primaryKey;size:36" json:"studentId"`
	Fee           int64     `gorm:"not null" json:"fee"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}
