package handler

import (
	"net/http"

	"branch-scheduler/internal/models"

	"github.com/gin-gonic/gin"
)

type meetingRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

func (h *Handler) ListMeetingRooms(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	rooms, err := h.meetingRoomService.GetAll()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *Handler) CreateMeetingRoom(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req meetingRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.meetingRoomService.Create(user, &models.MeetingRoom{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *Handler) UpdateMeetingRoom(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req meetingRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.meetingRoomService.Update(user, id, req.Name, req.Location)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) DeleteMeetingRoom(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.meetingRoomService.Delete(user, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meeting room deleted"})
}
