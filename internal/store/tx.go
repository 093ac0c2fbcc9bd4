package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-booking-backend/internal/model"
)

// Tx is the set of reads and writes available inside Store.Atomically.
// Lock* methods hold the row for the rest of the transaction; Save* methods
// fail with ErrConflict if the row's version moved since it was loaded.
type Tx interface {
	CreateInstitution(inst *model.Institution) error
	CreateStudent(student *model.Student) error
	CreateRoom(room *model.HostelRoom) error

	LockInstitution(id string) (*model.Institution, error)
	LockStudent(id string) (*model.Student, error)
	LockRoom(id string) (*model.HostelRoom, error)

	SaveInstitution(inst *model.Institution) error
	SaveStudent(student *model.Student) error
	SaveRoom(room *model.HostelRoom) error

	PutMemo(memo *model.RoomMemo) error
	MemoForRoom(institutionID, roomID string) (*model.RoomMemo, error)
	DeleteMemo(memo *model.RoomMemo) error

	SetFee(institutionID, studentID string, fee int64, at time.Time) error
	AppendBooking(rec *model.BookingRecord) error
	AppendTransfer(tr *model.ExternalTransfer) error
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) CreateInstitution(inst *model.Institution) error {
	if err := t.db.Create(inst).Error; err != nil {
		return fmt.Errorf("failed to create institution: %w", err)
	}
	return nil
}

func (t *gormTx) CreateStudent(student *model.Student) error {
	if err := t.db.Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (t *gormTx) CreateRoom(room *model.HostelRoom) error {
	if err := t.db.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (t *gormTx) forUpdate() *gorm.DB {
	return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (t *gormTx) LockInstitution(id string) (*model.Institution, error) {
	var inst model.Institution
	if err := t.forUpdate().First(&inst, "id = ?", id).Error; err != nil {
		return nil, notFound("institution", id, err)
	}
	return &inst, nil
}

func (t *gormTx) LockStudent(id string) (*model.Student, error) {
	var student model.Student
	if err := t.forUpdate().First(&student, "id = ?", id).Error; err != nil {
		return nil, notFound("student", id, err)
	}
	return &student, nil
}

func (t *gormTx) LockRoom(id string) (*model.HostelRoom, error) {
	var room model.HostelRoom
	if err := t.forUpdate().First(&room, "id = ?", id).Error; err != nil {
		return nil, notFound("room", id, err)
	}
	return &room, nil
}

func (t *gormTx) SaveInstitution(inst *model.Institution) error {
	return t.saveVersioned(&model.Institution{}, "institution", inst.ID, &inst.Version, map[string]any{
		"balance":    inst.Balance,
		"updated_at": inst.UpdatedAt,
	})
}

func (t *gormTx) SaveStudent(student *model.Student) error {
	return t.saveVersioned(&model.Student{}, "student", student.ID, &student.Version, map[string]any{
		"balance":    student.Balance,
		"updated_at": student.UpdatedAt,
	})
}

func (t *gormTx) SaveRoom(room *model.HostelRoom) error {
	return t.saveVersioned(&model.HostelRoom{}, "room", room.ID, &room.Version, map[string]any{
		"beds_available": room.BedsAvailable,
		"updated_at":     room.UpdatedAt,
	})
}

// saveVersioned writes the mutable columns of a row only if its version is
// still the one that was read, then bumps the version.
func (t *gormTx) saveVersioned(table any, kind, id string, version *int64, columns map[string]any) error {
	columns["version"] = *version + 1
	res := t.db.Model(table).
		Where("id = ? AND version = ?", id, *version).
		Updates(columns)
	if res.Error != nil {
		return fmt.Errorf("failed to save %s %s: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrConflict)
	}
	*version++
	return nil
}

func (t *gormTx) PutMemo(memo *model.RoomMemo) error {
	if err := t.db.Create(memo).Error; err != nil {
		return fmt.Errorf("failed to store memo for room %s: %w", memo.RoomID, err)
	}
	return nil
}

func (t *gormTx) MemoForRoom(institutionID, roomID string) (*model.RoomMemo, error) {
	var memo model.RoomMemo
	err := t.db.First(&memo, "institution_id = ? AND room_id = ?", institutionID, roomID).Error
	if err != nil {
		return nil, notFound("memo for room", roomID, err)
	}
	return &memo, nil
}

func (t *gormTx) DeleteMemo(memo *model.RoomMemo) error {
	res := t.db.Delete(&model.RoomMemo{}, "id = ?", memo.ID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete memo %s: %w", memo.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("memo %s: %w", memo.ID, ErrConflict)
	}
	return nil
}

func (t *gormTx) SetFee(institutionID, studentID string, fee int64, at time.Time) error {
	entry := model.FeeEntry{
		InstitutionID: institutionID,
		StudentID:     studentID,
		Fee:           fee,
		UpdatedAt:     at,
	}
	err := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "institution_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fee", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to record fee for student %s: %w", studentID, err)
	}
	return nil
}

func (t *gormTx) AppendBooking(rec *model.BookingRecord) error {
	if err := t.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to write booking record: %w", err)
	}
	return nil
}

func (t *gormTx) AppendTransfer(tr *model.ExternalTransfer) error {
	if err := t.db.Create(tr).Error; err != nil {
		return fmt.Errorf("failed to write %s transfer: %w", tr.Direction, err)
	}
	return nil
}
