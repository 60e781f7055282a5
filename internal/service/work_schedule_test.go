package service

import (
	"errors"
	"testing"
	"time"

	"branch-scheduler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPolicy() SchedulePolicy {
	return SchedulePolicy{
		DailyLimit:       5,
		AllowWeekend:     false,
		WorkStartMinutes: 7*60 + 30,
		WorkEndMinutes:   17*60 + 30,
	}
}

type scheduleTestEnv struct {
	svc         *WorkScheduleService
	wsRepo      *fakeWorkScheduleRepo
	holidayRepo *fakeHolidayRepo
	permRepo    *fakeSchedulePermissionRepo
	staff       *models.Staff
	editor      *models.SystemUser
}

func newScheduleTestEnv(t *testing.T, policy SchedulePolicy) *scheduleTestEnv {
	t.Helper()

	groupRepo := newFakeUserGroupRepo()
	group := &models.UserGroup{
		Name: "Editors",
		Permissions: models.PermissionMap{
			models.FunctionWorkSchedules: models.PermissionEdit,
		},
	}
	require.NoError(t, groupRepo.Create(group))

	editor := &models.SystemUser{ID: 1, Username: "editor", UserGroupID: group.ID}

	staffRepo := newFakeStaffRepo()
	staff := &models.Staff{EmployeeID: "E001", FullName: "Tran Van A", DepartmentID: 1}
	require.NoError(t, staffRepo.Create(staff))

	permRepo := newFakeSchedulePermissionRepo()
	require.NoError(t, permRepo.Grant(editor.ID, staff.ID))

	wsRepo := newFakeWorkScheduleRepo()
	holidayRepo := newFakeHolidayRepo()
	logger := testLogger()
	permSvc := NewPermissionService(groupRepo, permRepo, logger)
	holidaySvc := NewHolidayService(holidayRepo, permSvc, logger)

	return &scheduleTestEnv{
		svc:         NewWorkScheduleService(wsRepo, staffRepo, holidaySvc, permSvc, policy, logger),
		wsRepo:      wsRepo,
		holidayRepo: holidayRepo,
		permRepo:    permRepo,
		staff:       staff,
		editor:      editor,
	}
}

// 2025-06-09 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2025, 6, 9, hour, min, 0, 0, time.UTC)
}

func TestCreateSchedule_TimedEntryOnWeekday(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	created, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(11, 30),
		WorkType:  models.WorkTypeCustomerVisit,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, env.editor.ID, created.CreatedBy)
	assert.Equal(t, env.editor.ID, created.UpdatedBy)
}

func TestCreateSchedule_RejectsInvertedRange(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(11, 0),
		EndTime:   monday(9, 0),
		WorkType:  models.WorkTypeBranch,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCreateSchedule_RejectsTimedWeekendEntry(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	saturday := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: saturday,
		EndTime:   saturday.Add(2 * time.Hour),
		WorkType:  models.WorkTypeBranch,
	})
	assert.ErrorIs(t, err, ErrWeekendNotAllowed)
}

func TestCreateSchedule_AllowsFullDaySpanOverWeekend(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	// Friday midnight through Monday midnight: a full-day span, so the
	// weekend and work-hours rules do not apply.
	start := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: start,
		EndTime:   end,
		WorkType:  models.WorkTypeLeave,
	})
	assert.NoError(t, err)
}

func TestCreateSchedule_AllowsWeekendWhenPolicyPermits(t *testing.T) {
	policy := defaultPolicy()
	policy.AllowWeekend = true
	env := newScheduleTestEnv(t, policy)

	saturday := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: saturday,
		EndTime:   saturday.Add(2 * time.Hour),
		WorkType:  models.WorkTypeBranch,
	})
	assert.NoError(t, err)
}

func TestCreateSchedule_RejectsHolidayStart(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	require.NoError(t, env.holidayRepo.Create(&models.Holiday{
		Name: "Reunification Day",
		Date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
	}))

	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(10, 0),
		WorkType:  models.WorkTypeBranch,
	})
	assert.ErrorIs(t, err, ErrHolidayNotAllowed)
}

func TestCreateSchedule_RejectsRecurringHoliday(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	require.NoError(t, env.holidayRepo.Create(&models.Holiday{
		Name:        "Founding Day",
		Date:        time.Date(2020, 6, 9, 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
	}))

	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(10, 0),
		WorkType:  models.WorkTypeBranch,
	})
	assert.ErrorIs(t, err, ErrHolidayNotAllowed)
}

func TestCreateSchedule_RejectsOutsideWorkHours(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(6, 0),
		EndTime:   monday(9, 0),
		WorkType:  models.WorkTypeBranch,
	})
	assert.ErrorIs(t, err, ErrOutsideWorkHours)

	_, err = env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(16, 0),
		EndTime:   monday(18, 0),
		WorkType:  models.WorkTypeBranch,
	})
	assert.ErrorIs(t, err, ErrOutsideWorkHours)
}

func TestCreateSchedule_RejectsUnknownWorkType(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(10, 0),
		WorkType:  "vacation",
	})
	assert.ErrorIs(t, err, ErrInvalidWorkType)
}

func TestCreateSchedule_OtherRequiresCustomContent(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(10, 0),
		WorkType:  models.WorkTypeOther,
	})
	assert.ErrorIs(t, err, ErrMissingCustomContent)
}

func TestCreateSchedule_RejectsOverlongCustomContent(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	long := make([]byte, models.MaxContentLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:       env.staff.ID,
		StartTime:     monday(9, 0),
		EndTime:       monday(10, 0),
		WorkType:      models.WorkTypeOther,
		CustomContent: string(long),
	})
	assert.ErrorIs(t, err, ErrContentTooLong)
}

func TestCreateSchedule_ForbiddenWithoutStaffGrant(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	require.NoError(t, env.permRepo.Revoke(env.editor.ID, env.staff.ID))

	_, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(10, 0),
		WorkType:  models.WorkTypeBranch,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

// fillDay inserts count one-hour schedules for the staff member on the given
// day, straight into the repository.
func fillDay(t *testing.T, env *scheduleTestEnv, day time.Time, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, env.wsRepo.Create(&models.WorkSchedule{
			StaffID:   env.staff.ID,
			StartTime: time.Date(day.Year(), day.Month(), day.Day(), 8+i, 0, 0, 0, time.UTC),
			EndTime:   time.Date(day.Year(), day.Month(), day.Day(), 9+i, 0, 0, 0, time.UTC),
			WorkType:  models.WorkTypeBranch,
		}))
	}
}

func TestValidateDailyLimit_SaturatedMiddleDay(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 5)

	// Monday through Wednesday; Tuesday is already at the limit.
	result, err := env.svc.ValidateDailyLimit(
		env.staff.ID,
		time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		0,
	)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.NotNil(t, result.ViolatingDate)
	assert.Equal(t, tuesday, *result.ViolatingDate)
	assert.Equal(t, 5, result.CurrentCount)
}

func TestValidateDailyLimit_ReportsFirstViolatingDay(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 5)
	fillDay(t, env, wednesday, 5)

	result, err := env.svc.ValidateDailyLimit(
		env.staff.ID,
		time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		wednesday,
		0,
	)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.NotNil(t, result.ViolatingDate)
	assert.Equal(t, tuesday, *result.ViolatingDate)
}

func TestValidateDailyLimit_IsIdempotent(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 5)
	before, err := env.wsRepo.CountByStaff(env.staff.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		result, err := env.svc.ValidateDailyLimit(env.staff.ID, tuesday, tuesday, 0)
		require.NoError(t, err)
		assert.False(t, result.IsValid)
	}

	after, err := env.wsRepo.CountByStaff(env.staff.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreateSchedule_QuotaBlocksSpanOverSaturatedDay(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 5)
	before, err := env.wsRepo.CountByStaff(env.staff.ID)
	require.NoError(t, err)

	_, err = env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		WorkType:  models.WorkTypeLeave,
	})
	require.Error(t, err)

	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.ErrorIs(t, err, ErrDailyQuotaExceeded)
	assert.Equal(t, tuesday, quotaErr.ViolatingDate)
	assert.Equal(t, 5, quotaErr.CurrentCount)
	assert.Equal(t, 5, quotaErr.Limit)

	// Nothing was persisted.
	after, err := env.wsRepo.CountByStaff(env.staff.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreateSchedule_NarrowedRangeAvoidsSaturatedDay(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 5)

	created, err := env.svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(17, 0),
		WorkType:  models.WorkTypeCustomerVisit,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestUpdateSchedule_ExcludesItselfFromQuota(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 5)

	// Move the first of the five without tripping the quota it contributes to.
	updated, err := env.svc.Update(env.editor, 1, &models.WorkSchedule{
		StartTime: time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		WorkType:  models.WorkTypeCustomerVisit,
	})
	require.NoError(t, err)
	assert.Equal(t, models.WorkTypeCustomerVisit, updated.WorkType)
}

func TestDeleteSchedule_NotFound(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())

	err := env.svc.Delete(env.editor, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

// racingWorkScheduleRepo simulates a concurrent writer: right after a create
// lands, a competing schedule appears on the same day.
type racingWorkScheduleRepo struct {
	*fakeWorkScheduleRepo
	raceOnce bool
}

func (r *racingWorkScheduleRepo) Create(schedule *models.WorkSchedule) error {
	if err := r.fakeWorkScheduleRepo.Create(schedule); err != nil {
		return err
	}
	if !r.raceOnce {
		r.raceOnce = true
		return r.fakeWorkScheduleRepo.Create(&models.WorkSchedule{
			StaffID:   schedule.StaffID,
			StartTime: schedule.StartTime,
			EndTime:   schedule.EndTime,
			WorkType:  models.WorkTypeBranch,
		})
	}
	return nil
}

func TestCreateSchedule_RechecksQuotaAfterWrite(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 4)

	racing := &racingWorkScheduleRepo{fakeWorkScheduleRepo: env.wsRepo}
	groupRepo := newFakeUserGroupRepo()
	group := &models.UserGroup{
		Name:        "Editors",
		Permissions: models.PermissionMap{models.FunctionWorkSchedules: models.PermissionEdit},
	}
	require.NoError(t, groupRepo.Create(group))
	staffRepo := newFakeStaffRepo()
	staff := &models.Staff{EmployeeID: "E001", FullName: "Tran Van A"}
	require.NoError(t, staffRepo.Create(staff))
	logger := testLogger()
	permSvc := NewPermissionService(groupRepo, env.permRepo, logger)
	holidaySvc := NewHolidayService(env.holidayRepo, permSvc, logger)
	svc := NewWorkScheduleService(racing, staffRepo, holidaySvc, permSvc, defaultPolicy(), logger)

	// Day has 4 schedules; this create passes the pre-check, then the
	// simulated concurrent insert pushes the day to 6. The re-check must
	// roll this record back.
	created, err := svc.Create(env.editor, &models.WorkSchedule{
		StaffID:   staff.ID,
		StartTime: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
		WorkType:  models.WorkTypeBranch,
	})
	require.Error(t, err)
	assert.Nil(t, created)

	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, tuesday, quotaErr.ViolatingDate)
}

// racingUpdateWorkScheduleRepo lands a competing schedule on the target day
// right before an update saves, after the quota pre-check already passed.
type racingUpdateWorkScheduleRepo struct {
	*fakeWorkScheduleRepo
	rival    *models.WorkSchedule
	raceOnce bool
}

func (r *racingUpdateWorkScheduleRepo) Update(schedule *models.WorkSchedule) error {
	if !r.raceOnce {
		r.raceOnce = true
		if err := r.fakeWorkScheduleRepo.Create(r.rival); err != nil {
			return err
		}
	}
	return r.fakeWorkScheduleRepo.Update(schedule)
}

func TestUpdateSchedule_RechecksQuotaAfterWrite(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	fillDay(t, env, tuesday, 4)

	// The schedule being edited sits on Monday.
	target := &models.WorkSchedule{
		StaffID:   env.staff.ID,
		StartTime: monday(9, 0),
		EndTime:   monday(10, 0),
		WorkType:  models.WorkTypeBranch,
	}
	require.NoError(t, env.wsRepo.Create(target))

	racing := &racingUpdateWorkScheduleRepo{
		fakeWorkScheduleRepo: env.wsRepo,
		rival: &models.WorkSchedule{
			StaffID:   env.staff.ID,
			StartTime: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
			WorkType:  models.WorkTypeBranch,
		},
	}
	groupRepo := newFakeUserGroupRepo()
	group := &models.UserGroup{
		Name:        "Editors",
		Permissions: models.PermissionMap{models.FunctionWorkSchedules: models.PermissionEdit},
	}
	require.NoError(t, groupRepo.Create(group))
	logger := testLogger()
	permSvc := NewPermissionService(groupRepo, env.permRepo, logger)
	holidaySvc := NewHolidayService(env.holidayRepo, permSvc, logger)
	staffRepo := newFakeStaffRepo()
	staff := &models.Staff{EmployeeID: "E001", FullName: "Tran Van A"}
	require.NoError(t, staffRepo.Create(staff))
	svc := NewWorkScheduleService(racing, staffRepo, holidaySvc, permSvc, defaultPolicy(), logger)

	// Tuesday has 4 schedules, so moving the Monday entry there passes the
	// pre-check; the simulated rival then makes it 6. The update must lose
	// and the record return to Monday.
	_, err := svc.Update(env.editor, target.ID, &models.WorkSchedule{
		StartTime: time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		WorkType:  models.WorkTypeCustomerVisit,
	})
	require.Error(t, err)

	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, tuesday, quotaErr.ViolatingDate)

	stored, err := env.wsRepo.GetByID(target.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, monday(9, 0), stored.StartTime)
	assert.Equal(t, monday(10, 0), stored.EndTime)
	assert.Equal(t, models.WorkTypeBranch, stored.WorkType)

	// Tuesday holds the original four plus the rival, never six.
	count, err := env.wsRepo.CountOverlappingDay(env.staff.ID, tuesday, tuesday.Add(24*time.Hour-time.Second), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestListForStaff_RequiresViewPermission(t *testing.T) {
	env := newScheduleTestEnv(t, defaultPolicy())
	stranger := &models.SystemUser{ID: 7, Username: "stranger", UserGroupID: 99}

	_, err := env.svc.ListForStaff(stranger, env.staff.ID, monday(0, 0), monday(23, 0))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrInvalidRange))
	assert.True(t, IsDomainError(&QuotaExceededError{}))
	assert.False(t, IsDomainError(errors.New("disk on fire")))
}
