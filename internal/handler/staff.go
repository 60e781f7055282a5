package handler

import (
	"net/http"

	"branch-scheduler/internal/models"

	"github.com/gin-gonic/gin"
)

type staffRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	DepartmentID  uint   `json:"department_id" binding:"required"`
	PositionShort string `json:"position_short"`
	DisplayOrder  int    `json:"display_order"`
	IsBoardMember bool   `json:"is_board_member"`
}

func (r staffRequest) toModel() *models.Staff {
	return &models.Staff{
		EmployeeID:    r.EmployeeID,
		FullName:      r.FullName,
		DepartmentID:  r.DepartmentID,
		PositionShort: r.PositionShort,
		DisplayOrder:  r.DisplayOrder,
		IsBoardMember: r.IsBoardMember,
	}
}

func (h *Handler) ListStaff(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	if deptQuery := c.Query("department_id"); deptQuery != "" {
		id, ok := parseIDQuery(c, "department_id")
		if !ok {
			return
		}
		staff, err := h.staffService.GetByDepartment(id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, staff)
		return
	}

	staff, err := h.staffService.GetAll()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *Handler) CreateStaff(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff, err := h.staffService.Create(user, req.toModel())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff, err := h.staffService.Update(user, id, req.toModel())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.Delete(user, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staff member deleted"})
}
