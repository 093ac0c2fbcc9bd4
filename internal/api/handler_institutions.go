package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-booking-backend/internal/housing"
)

type createInstitutionRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateInstitution registers an institution owned by the caller.
func (h *Handler) CreateInstitution(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req createInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inst, err := h.svc.CreateInstitution(c.Request.Context(), caller, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inst)
}

// GetInstitution returns an institution.
func (h *Handler) GetInstitution(c *gin.Context) {
	inst, err := h.svc.GetInstitution(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

// GetBalance returns an institution's balance. No caller is required.
func (h *Handler) GetBalance(c *gin.Context) {
	id := c.Param("id")
	balance, err := h.svc.GetBalance(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"institutionId": id, "balance": balance})
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// WithdrawFunds pays part of the institution's balance to its owner.
func (h *Handler) WithdrawFunds(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	payout, err := h.svc.WithdrawFunds(c.Request.Context(), caller, c.Param("id"), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payout)
}

type createMemoRequest struct {
	SemesterPayment int64  `json:"semesterPayment"`
	StudentFee      int64  `json:"studentFee"`
	RoomName        string `json:"roomName" binding:"required"`
	RoomSize        int    `json:"roomSize"`
	BedsAvailable   int    `json:"bedsAvailable"`
}

// CreateRoomMemo creates a room and offers it in the institution's memo store.
func (h *Handler) CreateRoomMemo(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	var req createMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	room, memo, err := h.svc.CreateRoomMemo(c.Request.Context(), caller, c.Param("id"), housing.MemoInput{
		SemesterPayment: req.SemesterPayment,
		StudentFee:      req.StudentFee,
		RoomName:        req.RoomName,
		RoomSize:        req.RoomSize,
		BedsAvailable:   req.BedsAvailable,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room": room, "memo": memo})
}

// ListMemos returns the memos still on offer.
func (h *Handler) ListMemos(c *gin.Context) {
	memos, err := h.svc.ListMemos(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memos)
}

// GetFeePaid returns the fee-table entry for one student.
func (h *Handler) GetFeePaid(c *gin.Context) {
	id, studentID := c.Param("id"), c.Param("student_id")
	fee, err := h.svc.FeePaid(c.Request.Context(), id, studentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"institutionId": id, "studentId": studentID, "fee": fee})
}
