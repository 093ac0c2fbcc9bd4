package housing

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

func TestCreateInstitution(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	inst, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
	require.NoError(t, err)
	assert.NotEmpty(t, inst.ID)
	assert.Equal(t, string(instOwner), inst.OwnerAddress)
	assert.Equal(t, int64(0), inst.Balance)

	memos, err := svc.ListMemos(ctx, inst.ID)
	require.NoError(t, err)
	assert.Empty(t, memos)

	other, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
	require.NoError(t, err)
	assert.NotEqual(t, inst.ID, other.ID, "identifiers are unique")
}

func TestGetBalance_NoAuthorization(t *testing.T) {
	svc, gormDB, _ := newTestService(t)
	ctx := context.Background()

	inst, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
	require.NoError(t, err)
	require.NoError(t, gormDB.Model(&model.Institution{}).Where("id = ?", inst.ID).Update("balance", 420).Error)

	balance, err := svc.GetBalance(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(420), balance)

	_, err = svc.GetBalance(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithdrawFunds(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		caller      Caller
		amount      int64
		wantErr     error
		wantBalance int64
	}{
		{name: "Owner withdraws part", caller: instOwner, amount: 200, wantBalance: 300},
		{name: "Owner withdraws everything", caller: instOwner, amount: 500, wantBalance: 0},
		{name: "Stranger", caller: stranger, amount: 100, wantErr: ErrNotInstitutionOwner, wantBalance: 500},
		{name: "Student", caller: studentOwner, amount: 100, wantErr: ErrNotInstitutionOwner, wantBalance: 500},
		{name: "More than the balance", caller: instOwner, amount: 501, wantErr: ErrInsufficientFunds, wantBalance: 500},
		{name: "Negative amount", caller: instOwner, amount: -1, wantErr: ErrInvalidAmount, wantBalance: 500},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, gormDB, _ := newTestService(t)
			inst, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
			require.NoError(t, err)
			require.NoError(t, gormDB.Model(&model.Institution{}).Where("id = ?", inst.ID).Update("balance", 500).Error)

			payout, err := svc.WithdrawFunds(ctx, tc.caller, inst.ID, tc.amount)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, payout)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.amount, payout.Amount)
				assert.Equal(t, string(instOwner), payout.Address)
				assert.Equal(t, model.TransferPayout, payout.Direction)
			}

			balance, err := svc.GetBalance(ctx, inst.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBalance, balance)

			var payouts int64
			gormDB.Model(&model.ExternalTransfer{}).Where("direction = ?", model.TransferPayout).Count(&payouts)
			if tc.wantErr != nil {
				assert.Equal(t, int64(0), payouts)
			} else {
				assert.Equal(t, int64(1), payouts)
			}
		})
	}
}

func TestCreateRoomMemo(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	inst, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
	require.NoError(t, err)

	t.Run("Owner creates room and memo", func(t *testing.T) {
		room, memo, err := svc.CreateRoomMemo(ctx, instOwner, inst.ID, MemoInput{
			SemesterPayment: 200,
			StudentFee:      50,
			RoomName:        "North Hall 3F-07",
			RoomSize:        4,
			BedsAvailable:   4,
		})
		require.NoError(t, err)

		assert.Equal(t, inst.ID, room.InstitutionID)
		assert.Equal(t, string(instOwner), room.OwnerAddress)
		assert.Equal(t, 4, room.RoomSize)
		assert.Equal(t, 4, room.BedsAvailable)
		assert.Equal(t, "North Hall", room.Block)
		assert.Equal(t, 3, room.Floor)
		assert.Equal(t, 7, room.Number)

		assert.Equal(t, room.ID, memo.RoomID)
		assert.Equal(t, int64(250), memo.TotalDue())

		memos, err := svc.ListMemos(ctx, inst.ID)
		require.NoError(t, err)
		require.Len(t, memos, 1)
		assert.Equal(t, memo.ID, memos[0].ID)
	})

	t.Run("Unparseable room name is kept as is", func(t *testing.T) {
		room, _, err := svc.CreateRoomMemo(ctx, instOwner, inst.ID, MemoInput{RoomName: "Penthouse", RoomSize: 1, BedsAvailable: 1})
		require.NoError(t, err)
		assert.Equal(t, "Penthouse", room.Name)
		assert.Empty(t, room.Block)
	})

	t.Run("Non-owner is rejected", func(t *testing.T) {
		_, _, err := svc.CreateRoomMemo(ctx, stranger, inst.ID, standardMemo())
		assert.ErrorIs(t, err, ErrNotInstitutionOwner)
	})

	t.Run("Negative fee is rejected", func(t *testing.T) {
		in := standardMemo()
		in.StudentFee = -5
		_, _, err := svc.CreateRoomMemo(ctx, instOwner, inst.ID, in)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Fees whose total overflows are rejected", func(t *testing.T) {
		in := standardMemo()
		in.SemesterPayment = math.MaxInt64
		in.StudentFee = 1
		_, _, err := svc.CreateRoomMemo(ctx, instOwner, inst.ID, in)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	memos, err := svc.ListMemos(ctx, inst.ID)
	require.NoError(t, err)
	assert.Len(t, memos, 2, "rejected memos are not stored")
}

func TestReasonCode(t *testing.T) {
	assert.Equal(t, "InsufficientFunds", ReasonCode(fmt.Errorf("book: %w", ErrInsufficientFunds)))
	assert.Equal(t, "NotInstitutionOwner", ReasonCode(ErrNotInstitutionOwner))
	assert.Equal(t, "InvalidBooking", ReasonCode(ErrInvalidBooking))
	assert.Equal(t, "", ReasonCode(store.ErrNotFound))
	assert.Equal(t, "", ReasonCode(nil))
}
