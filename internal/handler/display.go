package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDisplayBoard serves the public lobby board. Defaults to today;
// ?date=YYYY-MM-DD renders any other day.
func (h *Handler) GetDisplayBoard(c *gin.Context) {
	if value := c.Query("date"); value != "" {
		date, err := time.ParseInLocation("2006-01-02", value, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		board, err := h.displayService.Board(date)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, board)
		return
	}

	board, err := h.displayService.TodayBoard()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// ExportScheduleWorkbook streams an xlsx of schedules between ?from and ?to.
func (h *Handler) ExportScheduleWorkbook(c *gin.Context) {
	user, ok := h.currentUser(c)
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

	workbook, err := h.reportService.BuildScheduleWorkbook(user, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("schedules-%s-%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to stream workbook")
	}
}
