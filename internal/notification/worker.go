package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-booking-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool tells students about their committed bookings.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	log     *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, log *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size*16),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log.Named("notification"),
	}
}

// WithSender replaces the push sender, mainly for tests.
func (wp *WorkerPool) WithSender(sender NotificationSender) *WorkerPool {
	wp.sender = sender
	return wp
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.log.Debug("worker started", zap.Int("worker", id))
	for {
		select {
		case bookingID := <-wp.jobs:
			wp.notifyBooking(ctx, bookingID)
		case <-ctx.Done():
			wp.log.Debug("worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues a committed booking for notification. It never blocks: when
// the queue is full the notice is dropped.
func (wp *WorkerPool) Dispatch(bookingID string) {
	select {
	case wp.jobs <- bookingID:
	default:
		wp.log.Warn("notification queue full, dropping booking notice", zap.String("booking_id", bookingID))
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// notifyBooking sends "Room <name> booked" to every subscription of the
// booking's student.
func (wp *WorkerPool) notifyBooking(ctx context.Context, bookingID string) {
	var booking model.BookingRecord
	if err := wp.db.WithContext(ctx).
		Select("student_id", "room_id").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		wp.log.Error("failed to load booking", zap.String("booking_id", bookingID), zap.Error(err))
		return
	}

	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).
		Where("student_id = ?", booking.StudentID).
		Find(&subscriptions).Error; err != nil {
		wp.log.Error("failed to fetch subscriptions",
			zap.String("student_id", booking.StudentID), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	roomLabel := booking.RoomID
	var room model.HostelRoom
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&room, "id = ?", booking.RoomID).Error; err != nil {
		wp.log.Warn("failed to load room name", zap.String("room_id", booking.RoomID), zap.Error(err))
	} else if room.Name != "" {
		roomLabel = room.Name
	}

	wp.log.Info("sending booking notifications",
		zap.String("booking_id", bookingID),
		zap.Int("subscriptions", len(subscriptions)),
	)
	message := fmt.Sprintf("Room %s booked", roomLabel)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Warn("failed to send notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		wp.log.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			wp.log.Error("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
