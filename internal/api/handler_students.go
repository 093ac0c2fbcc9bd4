package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createStudentRequest struct {
	Name          string `json:"name" binding:"required"`
	InstitutionID string `json:"institutionId" binding:"required"`
}

// CreateStudent opens a student account owned by the caller.
func (h *Handler) CreateStudent(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	student, err := h.svc.CreateStudent(c.Request.Context(), caller, req.Name, req.InstitutionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// GetStudent returns a student account.
func (h *Handler) GetStudent(c *gin.Context) {
	student, err := h.svc.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// TopUp deposits external funds into a student's balance.
func (h *Handler) TopUp(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	student, err := h.svc.TopUp(c.Request.Context(), caller, c.Param("id"), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// ListBookings returns a student's booking records, newest first.
func (h *Handler) ListBookings(c *gin.Context) {
	records, err := h.svc.ListBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
