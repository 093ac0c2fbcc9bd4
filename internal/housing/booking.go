package housing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/funds"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

// BookingRequest names the objects a booking acts on.
type BookingRequest struct {
	InstitutionID string
	StudentID     string
	RoomID        string
	MemoID        string
}

// Receipt is handed back to the caller of a successful booking.
type Receipt struct {
	Booking *model.BookingRecord    `json:"booking"`
	Amount  int64                   `json:"amount"`
	Payout  *model.ExternalTransfer `json:"payout"`
}

// BookRoom consumes the memo offered for a room: the student pays the
// student fee plus semester payment, the payment is forwarded to the
// institution's owner address, a booking record is written, the fee table is
// updated, one bed is taken and the memo is deleted.
//
// Preconditions are checked in this order, each with its own abort:
// caller owns the institution, student belongs to it, the memo is in its
// memo store, the room is owned by it and has a free bed.
func (s *Service) BookRoom(ctx context.Context, caller Caller, req BookingRequest) (*Receipt, error) {
	var receipt *Receipt
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		inst, err := tx.LockInstitution(req.InstitutionID)
		if err != nil {
			return wrapLoad("institution", err)
		}
		if err := requireOwner(caller, inst.OwnerAddress, ErrNotInstitutionOwner); err != nil {
			return err
		}

		student, err := tx.LockStudent(req.StudentID)
		if err != nil {
			return wrapLoad("student", err)
		}
		if student.InstitutionID != inst.ID {
			return ErrNotStudent
		}

		memo, err := tx.MemoForRoom(inst.ID, req.RoomID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && memo.ID != req.MemoID) {
			return ErrInvalidBooking
		}
		if err != nil {
			return err
		}

		room, err := tx.LockRoom(req.RoomID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidRoom
		}
		if err != nil {
			return err
		}
		if room.OwnerAddress != inst.OwnerAddress || room.BedsAvailable <= 0 {
			return ErrInvalidRoom
		}

		totalDue := memo.TotalDue()
		studentBalance, err := funds.NewBalance(student.Balance)
		if err != nil {
			return err
		}
		if totalDue > studentBalance.Value() {
			return ErrInsufficientFunds
		}
		payment, err := studentBalance.Withdraw(totalDue)
		if err != nil {
			return ErrInsufficientFunds
		}
		if payment.IsZero() {
			return ErrInvalidPayment
		}

		// The payment lands in the institution pool and an equal amount is drawn
		// back out for the owner, so the pool is unchanged by a booking.
		instBalance, err := funds.NewBalance(inst.Balance)
		if err != nil {
			return err
		}
		if err := instBalance.Deposit(&payment); err != nil {
			return fmt.Errorf("institution pool: %w", ErrInvalidAmount)
		}
		forward, err := instBalance.Withdraw(totalDue)
		if err != nil {
			return err
		}
		if forward.IsZero() {
			return ErrInvalidPayment
		}

		now := s.clock.Now()
		record := &model.BookingRecord{
			ID:                 uuid.NewString(),
			StudentID:          student.ID,
			RoomID:             room.ID,
			StudentAddress:     student.OwnerAddress,
			InstitutionAddress: inst.OwnerAddress,
			PaidFee:            memo.StudentFee,
			SemesterPayment:    memo.SemesterPayment,
			BookingTime:        now,
		}
		if err := tx.AppendBooking(record); err != nil {
			return err
		}

		payout := payTo(&forward, inst.OwnerAddress, "booking", record.ID, now)
		if err := tx.AppendTransfer(payout); err != nil {
			return err
		}

		if err := tx.SetFee(inst.ID, student.ID, memo.StudentFee, now); err != nil {
			return err
		}

		room.BedsAvailable--
		room.UpdatedAt = now
		if err := tx.SaveRoom(room); err != nil {
			return err
		}

		if err := tx.DeleteMemo(memo); err != nil {
			return err
		}

		student.Balance = studentBalance.Value()
		student.UpdatedAt = now
		if err := tx.SaveStudent(student); err != nil {
			return err
		}

		inst.Balance = instBalance.Value()
		inst.UpdatedAt = now
		if err := tx.SaveInstitution(inst); err != nil {
			return err
		}

		receipt = &Receipt{Booking: record, Amount: totalDue, Payout: payout}
		return nil
	})

	bookingsTotal.WithLabelValues(outcome(err)).Inc()
	fields := []zap.Field{
		zap.String("institution_id", req.InstitutionID),
		zap.String("student_id", req.StudentID),
		zap.String("room_id", req.RoomID),
		zap.String("memo_id", req.MemoID),
	}
	if err != nil {
		s.logAbort("book room", err, fields...)
		return nil, err
	}

	externalTransfersTotal.WithLabelValues(string(model.TransferPayout)).Inc()
	s.log.Info("room booked", append(fields,
		zap.String("booking_id", receipt.Booking.ID),
		zap.Int64("amount", receipt.Amount),
	)...)

	if s.notifier != nil {
		s.notifier.Dispatch(receipt.Booking.ID)
	}
	return receipt, nil
}

// ReturnRoom gives a bed back to the room. The fee is not refunded and the
// booking record is left as it is.
//
// BedsAvailable is not capped at RoomSize: returns without matching bookings
// can push it past the room's size.
func (s *Service) ReturnRoom(ctx context.Context, caller Caller, institutionID, studentID, roomID string) (*model.HostelRoom, error) {
	var room *model.HostelRoom
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		inst, err := tx.LockInstitution(institutionID)
		if err != nil {
			return wrapLoad("institution", err)
		}
		if err := requireOwner(caller, inst.OwnerAddress, ErrNotInstitutionOwner); err != nil {
			return err
		}

		student, err := tx.LockStudent(studentID)
		if err != nil {
			return wrapLoad("student", err)
		}
		if student.InstitutionID != inst.ID {
			return ErrNotStudent
		}

		room, err = tx.LockRoom(roomID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidRoom
		}
		if err != nil {
			return err
		}
		if room.OwnerAddress != inst.OwnerAddress {
			return ErrInvalidRoom
		}

		room.BedsAvailable++
		room.UpdatedAt = s.clock.Now()
		return tx.SaveRoom(room)
	})
	if err != nil {
		s.logAbort("return room", err,
			zap.String("institution_id", institutionID),
			zap.String("student_id", studentID),
			zap.String("room_id", roomID),
		)
		return nil, err
	}

	s.log.Info("room returned",
		zap.String("room_id", roomID),
		zap.String("student_id", studentID),
		zap.Int("beds_available", room.BedsAvailable),
	)
	return room, nil
}
