package model

import "time"

// RoomMemo is a fee offer for one room. An institution holds at most one memo
// per room; the memo is deleted by the booking that consumes it.
type RoomMemo struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	InstitutionID      string    `gorm:"size:36;not null;uniqueIndex:idx_memo_store" json:"institutionId"`
	RoomID             string    `gorm:"size:36;not null;uniqueIndex:idx_memo_store" json:"roomId"`
	InstitutionAddress string    `gorm:"size:128;not null" json:"institutionAddress"`
	SemesterPayment    int64     `gorm:"not null" json:"semesterPayment"`
	StudentFee         int64     `gorm:"not null" json:"studentFee"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
}

// TotalDue is what a student pays to consume the memo.
func (m *RoomMemo) TotalDue() int64 {
	return m.StudentFee + m.SemesterPayment
}
