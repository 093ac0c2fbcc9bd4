package model

import "time"

// PushSubscription holds a browser push subscription for a student's booking notices.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	StudentID string    `gorm:"size:36;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}
