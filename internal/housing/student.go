package housing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/funds"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

// CreateStudent opens a zero-balance account owned by the caller and tied to
// institutionID for good.
func (s *Service) CreateStudent(ctx context.Context, caller Caller, name, institutionID string) (*model.Student, error) {
	now := s.clock.Now()
	student := &model.Student{
		ID:            uuid.NewString(),
		Name:          name,
		OwnerAddress:  string(caller),
		InstitutionID: institutionID,
		Balance:       0,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		return tx.CreateStudent(student)
	})
	if err != nil {
		s.logAbort("create student", err, zap.String("owner", string(caller)))
		return nil, err
	}

	s.log.Info("student created",
		zap.String("student_id", student.ID),
		zap.String("institution_id", institutionID),
	)
	return student, nil
}

// TopUp merges amount, arriving from outside, into the student's balance.
func (s *Service) TopUp(ctx context.Context, caller Caller, studentID string, amount int64) (*model.Student, error) {
	var student *model.Student
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		var err error
		student, err = tx.LockStudent(studentID)
		if err != nil {
			return wrapLoad("student", err)
		}
		if err := requireOwner(caller, student.OwnerAddress, ErrNotStudentOwner); err != nil {
			return err
		}

		now := s.clock.Now()
		c, deposit, err := depositFrom(student.OwnerAddress, amount, student.ID, now)
		if err != nil {
			return err
		}
		if err := tx.AppendTransfer(deposit); err != nil {
			return err
		}

		balance, err := funds.NewBalance(student.Balance)
		if err != nil {
			return err
		}
		if err := balance.Deposit(&c); err != nil {
			return fmt.Errorf("top up %d: %w", amount, ErrInvalidAmount)
		}

		student.Balance = balance.Value()
		student.UpdatedAt = now
		return tx.SaveStudent(student)
	})
	if err != nil {
		s.logAbort("top up", err,
			zap.String("student_id", studentID),
			zap.Int64("amount", amount),
		)
		return nil, err
	}

	externalTransfersTotal.WithLabelValues(string(model.TransferDeposit)).Inc()
	s.log.Info("student topped up",
		zap.String("student_id", studentID),
		zap.Int64("amount", amount),
		zap.Int64("balance", student.Balance),
	)
	return student, nil
}
