package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hostel-booking-backend/internal/model"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a row changed underneath a transaction.
	ErrConflict = errors.New("concurrent modification")
)

// Store defines the interface for all database operations.
type Store interface {
	// Atomically runs fn in a single transaction. Any error returned by fn
	// rolls back every write made through tx.
	Atomically(ctx context.Context, fn func(tx Tx) error) error

	Institution(ctx context.Context, id string) (*model.Institution, error)
	Student(ctx context.Context, id string) (*model.Student, error)
	Room(ctx context.Context, id string) (*model.HostelRoom, error)
	Booking(ctx context.Context, id string) (*model.BookingRecord, error)
	BookingsByStudent(ctx context.Context, studentID string) ([]model.BookingRecord, error)
	MemosByInstitution(ctx context.Context, institutionID string) ([]model.RoomMemo, error)
	Fee(ctx context.Context, institutionID, studentID string) (int64, error)

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

func (s *gormStore) Institution(ctx context.Context, id string) (*model.Institution, error) {
	var inst model.Institution
	if err := s.db.WithContext(ctx).First(&inst, "id = ?", id).Error; err != nil {
		return nil, notFound("institution", id, err)
	}
	return &inst, nil
}

func (s *gormStore) Student(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	if err := s.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, notFound("student", id, err)
	}
	return &student, nil
}

func (s *gormStore) Room(ctx context.Context, id string) (*model.HostelRoom, error) {
	var room model.HostelRoom
	if err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, notFound("room", id, err)
	}
	return &room, nil
}

func (s *gormStore) Booking(ctx context.Context, id string) (*model.BookingRecord, error) {
	var rec model.BookingRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound("booking", id, err)
	}
	return &rec, nil
}

func (s *gormStore) BookingsByStudent(ctx context.Context, studentID string) ([]model.BookingRecord, error) {
	var records []model.BookingRecord
	if err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("booking_time DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings for student %s: %w", studentID, err)
	}
	return records, nil
}

func (s *gormStore) MemosByInstitution(ctx context.Context, institutionID string) ([]model.RoomMemo, error) {
	var memos []model.RoomMemo
	if err := s.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Find(&memos).Error; err != nil {
		return nil, fmt.Errorf("failed to list memos for institution %s: %w", institutionID, err)
	}
	return memos, nil
}

func (s *gormStore) Fee(ctx context.Context, institutionID, studentID string) (int64, error) {
	var entry model.FeeEntry
	err := s.db.WithContext(ctx).
		First(&entry, "institution_id = ? AND student_id = ?", institutionID, studentID).Error
	if err != nil {
		return 0, notFound("fee entry", studentID, err)
	}
	return entry.Fee, nil
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
}
