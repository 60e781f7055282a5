package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"branch-scheduler/internal/config"
	"branch-scheduler/internal/handler"
	"branch-scheduler/internal/repository"
	"branch-scheduler/internal/service"
	"branch-scheduler/pkg/datespan"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logger.Info("Initializing config...")
	cfg := config.GetBranchConfig()
	logger.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database instance:", err)
	}

	// SQLite keeps foreign keys off unless asked.
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	departmentRepo, err := repository.NewGormDepartmentRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create department repository")
	}
	staffRepo, err := repository.NewGormStaffRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create staff repository")
	}
	holidayRepo, err := repository.NewGormHolidayRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create holiday repository")
	}
	workScheduleRepo, err := repository.NewGormWorkScheduleRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create work schedule repository")
	}
	meetingRoomRepo, err := repository.NewGormMeetingRoomRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create meeting room repository")
	}
	reservationRepo, err := repository.NewGormReservationRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create reservation repository")
	}
	meetingScheduleRepo, err := repository.NewGormMeetingScheduleRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create meeting schedule repository")
	}
	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create user repository")
	}
	userGroupRepo, err := repository.NewGormUserGroupRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create user group repository")
	}
	schedulePermRepo, err := repository.NewGormSchedulePermissionRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create schedule permission repository")
	}

	workStart, err := datespan.ParseClock(cfg.WorkStartTime)
	if err != nil {
		logger.Fatalf("invalid WORK_START_TIME %q: %v", cfg.WorkStartTime, err)
	}
	workEnd, err := datespan.ParseClock(cfg.WorkEndTime)
	if err != nil {
		logger.Fatalf("invalid WORK_END_TIME %q: %v", cfg.WorkEndTime, err)
	}
	policy := service.SchedulePolicy{
		DailyLimit:       cfg.DailyScheduleLimit,
		AllowWeekend:     cfg.AllowWeekendSchedule,
		WorkStartMinutes: workStart,
		WorkEndMinutes:   workEnd,
	}
	loc := cfg.Location()

	permService := service.NewPermissionService(userGroupRepo, schedulePermRepo, logger)
	holidayService := service.NewHolidayService(holidayRepo, permService, logger)
	departmentService := service.NewDepartmentService(departmentRepo, staffRepo, permService, logger)
	staffService := service.NewStaffService(staffRepo, departmentRepo, workScheduleRepo, schedulePermRepo, permService, logger)
	workScheduleService := service.NewWorkScheduleService(workScheduleRepo, staffRepo, holidayService, permService, policy, logger)
	meetingRoomService := service.NewMeetingRoomService(meetingRoomRepo, reservationRepo, meetingScheduleRepo, permService, logger)
	reservationService := service.NewReservationService(reservationRepo, meetingScheduleRepo, meetingRoomRepo, permService, logger)
	meetingScheduleService := service.NewMeetingScheduleService(meetingScheduleRepo, reservationRepo, meetingRoomRepo, permService, logger)
	userService := service.NewUserService(userRepo, userGroupRepo, staffRepo, schedulePermRepo, permService, logger)
	authService := service.NewAuthService(userRepo, userGroupRepo, cfg.JWTSecret, logger)
	displayService := service.NewDisplayService(departmentRepo, staffRepo, workScheduleRepo, meetingScheduleRepo, meetingRoomRepo, holidayService, loc, logger)
	reportService := service.NewReportService(staffRepo, workScheduleRepo, permService, logger)

	if err := authService.BootstrapAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Infof("Warning: Failed to bootstrap admin: %v", err)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	apiHandler := handler.NewHandler(
		authService,
		userService,
		departmentService,
		staffService,
		holidayService,
		workScheduleService,
		meetingRoomService,
		reservationService,
		meetingScheduleService,
		displayService,
		reportService,
		cfg.JWTSecret,
		loc,
		logger,
	)
	apiHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed:", err)
		}
	}()

	<-stop
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Infof("Error during shutdown: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logger.Infof("Error closing database: %v", err)
	}

	logger.Info("Server stopped gracefully")
}
