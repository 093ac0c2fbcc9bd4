package housing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

// Notifier is told about bookings after they commit.
type Notifier interface {
	Dispatch(bookingID string)
}

// Service implements the institution, student, memo and booking operations.
// Each mutating operation runs as one store transaction: it either commits
// every change or none.
type Service struct {
	store    store.Store
	clock    Clock
	log      *zap.Logger
	notifier Notifier
}

// NewService creates a Service. A nil clock, logger or notifier falls back to
// the system clock, a no-op logger and no notifications.
func NewService(s store.Store, clock Clock, log *zap.Logger, notifier Notifier) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: s, clock: clock, log: log, notifier: notifier}
}

// GetInstitution returns an institution by ID.
func (s *Service) GetInstitution(ctx context.Context, id string) (*model.Institution, error) {
	return s.store.Institution(ctx, id)
}

// GetStudent returns a student by ID.
func (s *Service) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	return s.store.Student(ctx, id)
}

// GetRoom returns a room by ID.
func (s *Service) GetRoom(ctx context.Context, id string) (*model.HostelRoom, error) {
	return s.store.Room(ctx, id)
}

// GetBooking returns a booking record by ID.
func (s *Service) GetBooking(ctx context.Context, id string) (*model.BookingRecord, error) {
	return s.store.Booking(ctx, id)
}

// ListBookings returns a student's booking records, newest first.
func (s *Service) ListBookings(ctx context.Context, studentID string) ([]model.BookingRecord, error) {
	if _, err := s.store.Student(ctx, studentID); err != nil {
		return nil, err
	}
	return s.store.BookingsByStudent(ctx, studentID)
}

// ListMemos returns the unconsumed memos in an institution's memo store.
func (s *Service) ListMemos(ctx context.Context, institutionID string) ([]model.RoomMemo, error) {
	if _, err := s.store.Institution(ctx, institutionID); err != nil {
		return nil, err
	}
	return s.store.MemosByInstitution(ctx, institutionID)
}

// FeePaid returns the fee-table entry for a student, store.ErrNotFound if the
// student has never booked with the institution.
func (s *Service) FeePaid(ctx context.Context, institutionID, studentID string) (int64, error) {
	return s.store.Fee(ctx, institutionID, studentID)
}

// logAbort records a rejected operation. Reason-coded aborts are expected
// outcomes and log at Warn, anything else at Error.
func (s *Service) logAbort(op string, err error, fields ...zap.Field) {
	code := ReasonCode(err)
	if code == "" && !errors.Is(err, store.ErrNotFound) {
		s.log.Error(op+" failed", append(fields, zap.Error(err))...)
		return
	}
	s.log.Warn(op+" rejected", append(fields, zap.String("reason", code), zap.Error(err))...)
}

func wrapLoad(kind string, err error) error {
	return fmt.Errorf("load %s: %w", kind, err)
}
