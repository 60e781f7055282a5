package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"branch-scheduler/internal/middleware"
	"branch-scheduler/internal/models"
	"branch-scheduler/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authService            *service.AuthService
	userService            *service.UserService
	departmentService      *service.DepartmentService
	staffService           *service.StaffService
	holidayService         *service.HolidayService
	workScheduleService    *service.WorkScheduleService
	meetingRoomService     *service.MeetingRoomService
	reservationService     *service.ReservationService
	meetingScheduleService *service.MeetingScheduleService
	displayService         *service.DisplayService
	reportService          *service.ReportService
	jwtSecret              string
	loc                    *time.Location
	logger                 *logrus.Logger
}

func NewHandler(
	authService *service.AuthService,
	userService *service.UserService,
	departmentService *service.DepartmentService,
	staffService *service.StaffService,
	holidayService *service.HolidayService,
	workScheduleService *service.WorkScheduleService,
	meetingRoomService *service.MeetingRoomService,
	reservationService *service.ReservationService,
	meetingScheduleService *service.MeetingScheduleService,
	displayService *service.DisplayService,
	reportService *service.ReportService,
	jwtSecret string,
	loc *time.Location,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		authService:            authService,
		userService:            userService,
		departmentService:      departmentService,
		staffService:           staffService,
		holidayService:         holidayService,
		workScheduleService:    workScheduleService,
		meetingRoomService:     meetingRoomService,
		reservationService:     reservationService,
		meetingScheduleService: meetingScheduleService,
		displayService:         displayService,
		reportService:          reportService,
		jwtSecret:              jwtSecret,
		loc:                    loc,
		logger:                 logger,
	}
}

// RegisterRoutes wires every endpoint onto the router. The display feed is
// public; everything else sits behind JWT auth.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/display", h.GetDisplayBoard)

	api := r.Group("/api", middleware.JWTAuth(h.jwtSecret))
	{
		api.GET("/auth/me", h.GetProfile)

		api.GET("/departments", h.ListDepartments)
		api.POST("/departments", h.CreateDepartment)
		api.PUT("/departments/:id", h.UpdateDepartment)
		api.DELETE("/departments/:id", h.DeleteDepartment)

		api.GET("/staff", h.ListStaff)
		api.POST("/staff", h.CreateStaff)
		api.PUT("/staff/:id", h.UpdateStaff)
		api.DELETE("/staff/:id", h.DeleteStaff)

		api.GET("/holidays", h.ListHolidays)
		api.POST("/holidays", h.CreateHoliday)
		api.PUT("/holidays/:id", h.UpdateHoliday)
		api.DELETE("/holidays/:id", h.DeleteHoliday)

		api.GET("/staff/:id/schedules", h.ListWorkSchedules)
		api.POST("/schedules", h.CreateWorkSchedule)
		api.PUT("/schedules/:id", h.UpdateWorkSchedule)
		api.DELETE("/schedules/:id", h.DeleteWorkSchedule)
		api.POST("/schedules/validate", h.ValidateWorkSchedule)

		api.GET("/rooms", h.ListMeetingRooms)
		api.POST("/rooms", h.CreateMeetingRoom)
		api.PUT("/rooms/:id", h.UpdateMeetingRoom)
		api.DELETE("/rooms/:id", h.DeleteMeetingRoom)
		api.GET("/rooms/:id/reservations", h.ListRoomReservations)

		api.GET("/reservations", h.ListReservations)
		api.GET("/reservations/:id", h.GetReservation)
		api.POST("/reservations", h.CreateReservation)
		api.PUT("/reservations/:id", h.EditReservation)
		api.DELETE("/reservations/:id", h.DeleteReservation)
		api.POST("/reservations/:id/approve", h.ApproveReservation)
		api.POST("/reservations/:id/reject", h.RejectReservation)
		api.POST("/reservations/:id/revoke", h.RevokeReservation)

		api.GET("/meeting-schedules", h.ListMeetingSchedules)
		api.POST("/meeting-schedules", h.CreateMeetingSchedule)
		api.DELETE("/meeting-schedules/:id", h.DeleteMeetingSchedule)

		api.GET("/groups", h.ListUserGroups)
		api.POST("/groups", h.CreateUserGroup)
		api.PUT("/groups/:id", h.UpdateUserGroup)
		api.DELETE("/groups/:id", h.DeleteUserGroup)

		api.GET("/users", h.ListUsers)
		api.POST("/users", h.CreateUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.DELETE("/users/:id", h.DeleteUser)
		api.POST("/users/:id/schedule-permissions", h.GrantSchedulePermission)
		api.DELETE("/users/:id/schedule-permissions/:staffId", h.RevokeSchedulePermission)

		api.GET("/reports/schedules.xlsx", h.ExportScheduleWorkbook)
	}
}

// currentUser resolves the authenticated actor from the request context.
func (h *Handler) currentUser(c *gin.Context) (*models.SystemUser, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
		return nil, false
	}
	return user, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// parseDateQuery reads a YYYY-MM-DD query value in the branch timezone, so
// the calendar day means the same thing regardless of where the server runs.
func (h *Handler) parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return fallback, true
	}
	date, err := time.ParseInLocation("2006-01-02", value, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

// today is the current instant in the branch timezone.
func (h *Handler) today() time.Time {
	return time.Now().In(h.loc)
}

// respondError translates domain errors into HTTP responses. Quota
// violations carry the violating date and current count so the UI can show
// them; unexpected failures log and return a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	var quotaErr *service.QuotaExceededError
	if errors.As(err, &quotaErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":          quotaErr.Error(),
			"violating_date": quotaErr.ViolatingDate.Format("2006-01-02"),
			"current_count":  quotaErr.CurrentCount,
			"limit":          quotaErr.Limit,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case service.IsDomainError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error, please retry"})
	}
}
