package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrImmutableRecord is returned when something tries to change a frozen record.
var ErrImmutableRecord = errors.New("record is immutable")

// BookingRecord is the receipt of a completed booking. It is written once and
// never updated or deleted.
type BookingRecord struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	StudentID          string    `gorm:"size:36;not null;index" json:"studentId"`
	RoomID             string    `gorm:"size:36;not null;index" json:"roomId"`
	StudentAddress     string    `gorm:"size:128;not null" json:"studentAddress"`
	InstitutionAddress string    `gorm:"size:128;not null" json:"institutionAddress"`
	PaidFee            int64     `gorm:"not null" json:"paidFee"`
	SemesterPayment    int64     `gorm:"not null" json:"semesterPayment"`
	BookingTime        time.Time `gorm:"not null" json:"bookingTime"`
}

func (BookingRecord) BeforeUpdate(*gorm.DB) error { return ErrImmutableRecord }

func (BookingRecord) BeforeDelete(*gorm.DB) error { return ErrImmutableRecord }
