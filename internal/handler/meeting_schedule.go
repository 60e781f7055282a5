package handler

import (
	"net/http"
	"time"

	"branch-scheduler/internal/models"

	"github.com/gin-gonic/gin"
)

// ListMeetingSchedules returns confirmed meetings in a date range, optionally
// for a single room via ?room_id=.
func (h *Handler) ListMeetingSchedules(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	now := h.today()
	from, ok := h.parseDateQuery(c, "from", now)
	if !ok {
		return
	}
	to, ok := h.parseDateQuery(c, "to", now.AddDate(0, 1, 0))
	if !ok {
		return
	}

	if roomQuery := c.Query("room_id"); roomQuery != "" {
		roomID, ok := parseIDQuery(c, "room_id")
		if !ok {
			return
		}
		schedules, err := h.meetingScheduleService.ListByRoom(roomID, from, to)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, schedules)
		return
	}

	schedules, err := h.meetingScheduleService.ListOverlapping(from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// CreateMeetingSchedule places a meeting directly, bypassing the reservation
// workflow. Reserved for coordinators with edit rights on meeting schedules.
func (h *Handler) CreateMeetingSchedule(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req struct {
		RoomID         uint      `json:"room_id" binding:"required"`
		StartTime      time.Time `json:"start_time" binding:"required"`
		EndTime        time.Time `json:"end_time" binding:"required"`
		MeetingContent string    `json:"meeting_content" binding:"required"`
		ContactPerson  string    `json:"contact_person"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.meetingScheduleService.Create(user, &models.MeetingSchedule{
		RoomID:         req.RoomID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		MeetingContent: req.MeetingContent,
		ContactPerson:  req.ContactPerson,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

func (h *Handler) DeleteMeetingSchedule(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.meetingScheduleService.Delete(user, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meeting schedule deleted"})
}
