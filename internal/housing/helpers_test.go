package housing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-booking-backend/internal/db"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

const (
	instOwner    = Caller("0xinstitution")
	studentOwner = Caller("0xstudent")
	stranger     = Caller("0xstranger")
)

var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *recordingNotifier) Dispatch(bookingID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, bookingID)
}

func (n *recordingNotifier) dispatched() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.ids...)
}

// newTestDB opens a private in-memory SQLite database with every table migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return gormDB
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *recordingNotifier) {
	t.Helper()
	gormDB := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewService(store.NewGormStore(gormDB), fixedClock{now: testNow}, zap.NewNop(), notifier)
	return svc, gormDB, notifier
}

// bookingFixture is an institution with one offered room and an affiliated,
// funded student.
type bookingFixture struct {
	inst    *model.Institution
	student *model.Student
	room    *model.HostelRoom
	memo    *model.RoomMemo
}

func (f bookingFixture) request() BookingRequest {
	return BookingRequest{
		InstitutionID: f.inst.ID,
		StudentID:     f.student.ID,
		RoomID:        f.room.ID,
		MemoID:        f.memo.ID,
	}
}

func setupBooking(t *testing.T, svc *Service, balance int64, memo MemoInput) bookingFixture {
	t.Helper()
	ctx := context.Background()

	inst, err := svc.CreateInstitution(ctx, instOwner, "Riverside University")
	require.NoError(t, err)

	student, err := svc.CreateStudent(ctx, studentOwner, "Ada", inst.ID)
	require.NoError(t, err)
	if balance > 0 {
		student, err = svc.TopUp(ctx, studentOwner, student.ID, balance)
		require.NoError(t, err)
	}

	room, m, err := svc.CreateRoomMemo(ctx, instOwner, inst.ID, memo)
	require.NoError(t, err)

	return bookingFixture{inst: inst, student: student, room: room, memo: m}
}

func standardMemo() MemoInput {
	return MemoInput{
		SemesterPayment: 200,
		StudentFee:      50,
		RoomName:        "A-1-01",
		RoomSize:        1,
		BedsAvailable:   1,
	}
}
