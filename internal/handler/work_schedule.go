package handler

import (
	"net/http"
	"time"

	"branch-scheduler/internal/models"

	"github.com/gin-gonic/gin"
)

type workScheduleRequest struct {
	StaffID       uint      `json:"staff_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	WorkType      string    `json:"work_type" binding:"required"`
	CustomContent string    `json:"custom_content"`
}

func (h *Handler) ListWorkSchedules(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	now := h.today()
	from, ok := h.parseDateQuery(c, "from", now.AddDate(0, -1, 0))
	if !ok {
		return
	}
	to, ok := h.parseDateQuery(c, "to", now.AddDate(0, 1, 0))
	if !ok {
		return
	}

	schedules, err := h.workScheduleService.ListForStaff(user, staffID, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *Handler) CreateWorkSchedule(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req workScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule := &models.WorkSchedule{
		StaffID:       req.StaffID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		WorkType:      req.WorkType,
		CustomContent: req.CustomContent,
	}
	created, err := h.workScheduleService.Create(user, schedule)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateWorkSchedule(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req workScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := &models.WorkSchedule{
		StaffID:       req.StaffID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		WorkType:      req.WorkType,
		CustomContent: req.CustomContent,
	}
	updated, err := h.workScheduleService.Update(user, id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteWorkSchedule(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workScheduleService.Delete(user, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}

// ValidateWorkSchedule dry-runs the daily quota check so the UI can warn
// before submitting.
func (h *Handler) ValidateWorkSchedule(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	var req struct {
		StaffID   uint      `json:"staff_id" binding:"required"`
		StartTime time.Time `json:"start_time" binding:"required"`
		EndTime   time.Time `json:"end_time" binding:"required"`
		ExcludeID uint      `json:"exclude_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.workScheduleService.ValidateDailyLimit(req.StaffID, req.StartTime, req.EndTime, req.ExcludeID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
