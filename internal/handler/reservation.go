package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type reservationRequest struct {
	RoomID         uint      `json:"room_id" binding:"required"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	MeetingContent string    `json:"meeting_content" binding:"required"`
	ContactInfo    string    `json:"contact_info"`
}

// ListReservations returns the caller's own requests by default; ?scope=all
// switches to the approval queue, optionally filtered by ?status=.
func (h *Handler) ListReservations(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if c.Query("scope") == "all" {
		reservations, err := h.reservationService.ListAll(user, c.Query("status"))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reservations)
		return
	}

	reservations, err := h.reservationService.ListOwn(user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// ListRoomReservations returns one room's reservations between ?from and
// ?to, defaulting to the coming week, so a free slot can be picked before
// filing a request.
func (h *Handler) ListRoomReservations(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	now := h.today()
	from, ok := h.parseDateQuery(c, "from", now)
	if !ok {
		return
	}
	to, ok := h.parseDateQuery(c, "to", now.AddDate(0, 0, 6))
	if !ok {
		return
	}

	reservations, err := h.reservationService.ListForRoom(user, roomID, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *Handler) GetReservation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Get(user, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Create(user, req.RoomID, req.StartTime, req.EndTime, req.MeetingContent, req.ContactInfo)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (h *Handler) EditReservation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Edit(user, id, req.RoomID, req.StartTime, req.EndTime, req.MeetingContent, req.ContactInfo)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) DeleteReservation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.Delete(user, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}

func (h *Handler) ApproveReservation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Approve(user, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) RejectReservation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Reject(user, id, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) RevokeReservation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Revoke(user, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}
