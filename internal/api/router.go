package api

import (
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"hostel-booking-backend/config"
	"hostel-booking-backend/internal/housing"
	"hostel-booking-backend/internal/mw"
)

// Per-client buckets unused for this long are dropped.
const rateLimitIdle = 10 * time.Minute

// NewRouter creates and configures a new Gin router.
func NewRouter(svc *housing.Service, db *gorm.DB, webpushOptions *webpush.Options, cfg config.ServerConfig, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), mw.Logger(log, cfg.CallerHeader), mw.Metrics())

	handler := NewHandler(svc, db, webpushOptions, cfg.CallerHeader, log)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, rateLimitIdle)

	// Booking records never change, so a hit can be served until it expires.
	caching := mw.NewResponseCache(cfg.CacheTTL).Handler()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		institutions := api.Group("/institutions")
		institutions.POST("", handler.CreateInstitution)
		institutions.GET("/:id", handler.GetInstitution)
		institutions.GET("/:id/balance", handler.GetBalance)
		institutions.POST("/:id/withdrawals", handler.WithdrawFunds)
		institutions.POST("/:id/memos", handler.CreateRoomMemo)
		institutions.GET("/:id/memos", handler.ListMemos)
		institutions.GET("/:id/fees/:student_id", handler.GetFeePaid)
		institutions.POST("/:id/bookings", handler.BookRoom)
		institutions.POST("/:id/returns", handler.ReturnRoom)

		students := api.Group("/students")
		students.POST("", handler.CreateStudent)
		students.GET("/:id", handler.GetStudent)
		students.POST("/:id/topups", handler.TopUp)
		students.GET("/:id/bookings", handler.ListBookings)

		api.GET("/bookings/:id", caching, handler.GetBooking)
		api.GET("/rooms/:id", handler.GetRoom)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
