package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-booking-backend/internal/housing"
)

type bookRoomRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	RoomID    string `json:"roomId" binding:"required"`
	MemoID    string `json:"memoId" binding:"required"`
}

// BookRoom books a room for a student against the room's memo.
func (h *Handler) BookRoom(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req bookRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	receipt, err := h.svc.BookRoom(c.Request.Context(), caller, housing.BookingRequest{
		InstitutionID: c.Param("id"),
		StudentID:     req.StudentID,
		RoomID:        req.RoomID,
		MemoID:        req.MemoID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

type returnRoomRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	RoomID    string `json:"roomId" binding:"required"`
}

// ReturnRoom gives a student's bed back to the room.
func (h *Handler) ReturnRoom(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req returnRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	room, err := h.svc.ReturnRoom(c.Request.Context(), caller, c.Param("id"), req.StudentID, req.RoomID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetBooking returns a booking record.
func (h *Handler) GetBooking(c *gin.Context) {
	rec, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetRoom returns a room with its remaining capacity.
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.svc.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
