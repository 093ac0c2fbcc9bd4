package housing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

func TestCreateStudent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	inst, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
	require.NoError(t, err)

	student, err := svc.CreateStudent(ctx, studentOwner, "Ada", inst.ID)
	require.NoError(t, err)
	assert.Equal(t, inst.ID, student.InstitutionID)
	assert.Equal(t, string(studentOwner), student.OwnerAddress)
	assert.Equal(t, int64(0), student.Balance)
}

func TestTopUp(t *testing.T) {
	svc, gormDB, _ := newTestService(t)
	ctx := context.Background()

	inst, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
	require.NoError(t, err)
	student, err := svc.CreateStudent(ctx, studentOwner, "Ada", inst.ID)
	require.NoError(t, err)

	student, err = svc.TopUp(ctx, studentOwner, student.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, int64(120), student.Balance)

	student, err = svc.TopUp(ctx, studentOwner, student.ID, 80)
	require.NoError(t, err)
	assert.Equal(t, int64(200), student.Balance)

	_, err = svc.TopUp(ctx, instOwner, student.ID, 1000)
	assert.ErrorIs(t, err, ErrNotStudentOwner, "institution owner cannot fund the student")

	_, err = svc.TopUp(ctx, studentOwner, student.ID, -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	stored, err := svc.GetStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), stored.Balance)

	var deposits []model.ExternalTransfer
	require.NoError(t, gormDB.Where("direction = ?", model.TransferDeposit).Order("amount").Find(&deposits).Error)
	require.Len(t, deposits, 2)
	assert.Equal(t, int64(80), deposits[0].Amount)
	assert.Equal(t, int64(120), deposits[1].Amount)
	assert.Equal(t, student.ID, deposits[0].Ref)
}

func TestAuthorizeStudent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	student, err := svc.CreateStudent(ctx, studentOwner, "Ada", "inst-1")
	require.NoError(t, err)

	got, err := svc.AuthorizeStudent(ctx, studentOwner, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, got.ID)

	_, err = svc.AuthorizeStudent(ctx, stranger, student.ID)
	assert.ErrorIs(t, err, ErrNotStudentOwner)

	_, err = svc.AuthorizeStudent(ctx, "", student.ID)
	assert.ErrorIs(t, err, ErrNotStudentOwner)

	_, err = svc.AuthorizeStudent(ctx, studentOwner, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTopUp_OverflowIsRejected(t *testing.T) {
	svc, gormDB, _ := newTestService(t)
	ctx := context.Background()
	f := setupBooking(t, svc, math.MaxInt64, standardMemo())

	_, err := svc.TopUp(ctx, studentOwner, f.student.ID, 10)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, "InvalidAmount", ReasonCode(err))

	stored, err := svc.GetStudent(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), stored.Balance)

	var deposits int64
	require.NoError(t, gormDB.Model(&model.ExternalTransfer{}).
		Where("direction = ?", model.TransferDeposit).Count(&deposits).Error)
	assert.Equal(t, int64(1), deposits, "the rejected top-up leaves no transfer row")

	// The account still books normally afterwards.
	receipt, err := svc.BookRoom(ctx, instOwner, f.request())
	require.NoError(t, err)
	assert.Equal(t, int64(250), receipt.Amount)
}
