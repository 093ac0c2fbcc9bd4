package housing

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/parse"
	"hostel-booking-backend/internal/store"
)

// MemoInput describes a room and the fee offer published for it.
type MemoInput struct {
	SemesterPayment int64
	StudentFee      int64
	RoomName        string
	RoomSize        int
	BedsAvailable   int
}

func (in MemoInput) validate() error {
	if in.SemesterPayment < 0 || in.StudentFee < 0 || in.RoomSize < 0 || in.BedsAvailable < 0 {
		return ErrInvalidAmount
	}
	if in.StudentFee > math.MaxInt64-in.SemesterPayment {
		return ErrInvalidAmount
	}
	return nil
}

// CreateRoomMemo creates a room and offers it through a memo stored in the
// institution's memo store under the room's ID. The memo stays there until a
// booking consumes it.
func (s *Service) CreateRoomMemo(ctx context.Context, caller Caller, institutionID string, in MemoInput) (*model.HostelRoom, *model.RoomMemo, error) {
	var (
		room *model.HostelRoom
		memo *model.RoomMemo
	)
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		inst, err := tx.LockInstitution(institutionID)
		if err != nil {
			return wrapLoad("institution", err)
		}
		if err := requireOwner(caller, inst.OwnerAddress, ErrNotInstitutionOwner); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}

		now := s.clock.Now()
		room = &model.HostelRoom{
			ID:            uuid.NewString(),
			InstitutionID: inst.ID,
			OwnerAddress:  inst.OwnerAddress,
			Name:          in.RoomName,
			RoomSize:      in.RoomSize,
			BedsAvailable: in.BedsAvailable,
			Version:       1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if label, err := parse.ParseRoomLabel(in.RoomName); err == nil {
			room.Block, room.Floor, room.Number = label.Block, label.Floor, label.Number
		}
		if err := tx.CreateRoom(room); err != nil {
			return err
		}

		memo = &model.RoomMemo{
			ID:                 uuid.NewString(),
			InstitutionID:      inst.ID,
			RoomID:             room.ID,
			InstitutionAddress: inst.OwnerAddress,
			SemesterPayment:    in.SemesterPayment,
			StudentFee:         in.StudentFee,
			CreatedAt:          now,
		}
		return tx.PutMemo(memo)
	})
	if err != nil {
		s.logAbort("create room memo", err, zap.String("institution_id", institutionID))
		return nil, nil, err
	}

	s.log.Info("room memo created",
		zap.String("institution_id", institutionID),
		zap.String("room_id", room.ID),
		zap.String("memo_id", memo.ID),
		zap.Int64("student_fee", memo.StudentFee),
		zap.Int64("semester_payment", memo.SemesterPayment),
	)
	return room, memo, nil
}
