package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-booking-backend/internal/housing"
	"hostel-booking-backend/internal/model"
)

var errEndpointTaken = errors.New("endpoint is subscribed for another student")

type putSubscriptionRequest struct {
	Endpoint  string `json:"endpoint" binding:"required"`
	P256DH    string `json:"p256dh" binding:"required"`
	Auth      string `json:"auth" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
}

// PutSubscription creates or replaces the push subscription that receives a
// student's booking notices. The caller must own the student account.
func (h *Handler) PutSubscription(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.svc.AuthorizeStudent(c.Request.Context(), caller, req.StudentID); err != nil {
		h.respondError(c, err)
		return
	}

	subscription := model.PushSubscription{
		Endpoint:  req.Endpoint,
		P256DH:    req.P256DH,
		Auth:      req.Auth,
		StudentID: req.StudentID,
		CreatedAt: time.Now().UTC(),
	}
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var existing model.PushSubscription
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&existing, "endpoint = ?", req.Endpoint).Error
		switch {
		case err == nil && existing.StudentID != req.StudentID:
			return errEndpointTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		// An endpoint never changes hands, only its keys are refreshed.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(&subscription).Error
	})
	if errors.Is(err, errEndpointTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "EndpointTaken"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// loadOwnedSubscription finds a subscription by endpoint and checks that the
// caller owns its student. It writes the error response itself.
func (h *Handler) loadOwnedSubscription(c *gin.Context, caller housing.Caller, endpoint string) (*model.PushSubscription, bool) {
	var subscription model.PushSubscription
	err := h.db.WithContext(c.Request.Context()).First(&subscription, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found", "code": "NotFound"})
		return nil, false
	}
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if _, err := h.svc.AuthorizeStudent(c.Request.Context(), caller, subscription.StudentID); err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return &subscription, true
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	subscription, ok := h.loadOwnedSubscription(c, caller, req.Endpoint)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(subscription).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSubscription reports which student a subscription endpoint notifies.
func (h *Handler) GetSubscription(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required", "code": "BadRequest"})
		return
	}
	subscription, ok := h.loadOwnedSubscription(c, caller, endpoint)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"endpoint": subscription.Endpoint, "studentId": subscription.StudentID})
}
