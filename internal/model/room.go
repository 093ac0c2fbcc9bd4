package model

import "time"

// HostelRoom represents a bookable room and its remaining capacity.
type HostelRoom struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	InstitutionID string    `gorm:"size:36;not null;index" json:"institutionId"`
	OwnerAddress  string    `gorm:"size:128;not null" json:"ownerAddress"` // Owner address of the institution
	Name          string    `gorm:"size:256;not null" json:"name"`
	Block         string    `gorm:"size:64" json:"block,omitempty"`
	Floor         int       `json:"floor,omitempty"`
	Number        int       `json:"number,omitempty"`
	RoomSize      int       `gorm:"not null" json:"roomSize"`
	BedsAvailable int       `gorm:"not null" json:"bedsAvailable"`
	Version       int64     `gorm:"not null" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
