package handler

import (
	"net/http"
	"time"

	"branch-scheduler/internal/models"

	"github.com/gin-gonic/gin"
)

type holidayRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	IsRecurring bool   `json:"is_recurring"`
}

func (r holidayRequest) parseDate(c *gin.Context) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func (h *Handler) ListHolidays(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	holidays, err := h.holidayService.GetAll()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, holidays)
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := req.parseDate(c)
	if !ok {
		return
	}

	holiday, err := h.holidayService.Create(user, &models.Holiday{
		Name:        req.Name,
		Date:        date,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holiday)
}

func (h *Handler) UpdateHoliday(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := req.parseDate(c)
	if !ok {
		return
	}

	holiday, err := h.holidayService.Update(user, id, req.Name, date, req.IsRecurring)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, holiday)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.holidayService.Delete(user, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "holiday deleted"})
}
