package model

import (
	"time"

	"gorm.io/gorm"
)

// TransferDirection tells whether value entered or left the system.
type TransferDirection string

const (
	TransferDeposit TransferDirection = "deposit"
	TransferPayout  TransferDirection = "payout"
)

// ExternalTransfer logs value crossing the system boundary, either a student
// top-up or a payout to an institution's owner address.
type ExternalTransfer struct {
	ID        string            `gorm:"primaryKey;size:36" json:"id"`
	Direction TransferDirection `gorm:"size:16;not null;index" json:"direction"`
	Address   string            `gorm:"size:128;not null;index" json:"address"`
	Amount    int64             `gorm:"not null" json:"amount"`
	Reason    string            `gorm:"size:64;not null" json:"reason"`
	Ref       string            `gorm:"size:36" json:"ref,omitempty"` // Booking, student or institution the transfer belongs to
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
}

func (ExternalTransfer) BeforeUpdate(*gorm.DB) error { return ErrImmutableRecord }

func (ExternalTransfer) BeforeDelete(*gorm.DB) error { return ErrImmutableRecord }
