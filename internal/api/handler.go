package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-booking-backend/internal/housing"
	"hostel-booking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc          *housing.Service
	db           *gorm.DB
	webpush      *webpush.Options
	callerHeader string
	log          *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc *housing.Service, db *gorm.DB, webpushOptions *webpush.Options, callerHeader string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		svc:          svc,
		db:           db,
		webpush:      webpushOptions,
		callerHeader: callerHeader,
		log:          log,
	}
}

// caller reads the caller address header. It answers 400 and returns false
// when the header is missing.
func (h *Handler) caller(c *gin.Context) (housing.Caller, bool) {
	addr := c.GetHeader(h.callerHeader)
	if addr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.callerHeader + " header is required", "code": "MissingCaller"})
		return "", false
	}
	return housing.Caller(addr), true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "BadRequest"})
}

// respondError maps an operation error onto a status code and the abort's
// reason code.
func (h *Handler) respondError(c *gin.Context, err error) {
	code := housing.ReasonCode(err)
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, housing.ErrNotInstitutionOwner), errors.Is(err, housing.ErrNotStudentOwner):
		status = http.StatusForbidden
	case errors.Is(err, housing.ErrInvalidAmount):
		status = http.StatusBadRequest
	case code != "":
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, "NotFound"
	case errors.Is(err, store.ErrConflict):
		status, code = http.StatusConflict, "Conflict"
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error", "code": "Internal"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
