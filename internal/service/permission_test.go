package service

import (
	"testing"

	"branch-scheduler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPermissionTestEnv(t *testing.T, permissions models.PermissionMap) (*PermissionService, *models.SystemUser, *fakeSchedulePermissionRepo) {
	t.Helper()

	groupRepo := newFakeUserGroupRepo()
	group := &models.UserGroup{Name: "Test", Permissions: permissions}
	require.NoError(t, groupRepo.Create(group))

	schedPermRepo := newFakeSchedulePermissionRepo()
	svc := NewPermissionService(groupRepo, schedPermRepo, testLogger())
	user := &models.SystemUser{ID: 1, Username: "user", UserGroupID: group.ID}
	return svc, user, schedPermRepo
}

func TestPermission_AbsentKeyMeansNone(t *testing.T) {
	svc, user, _ := newPermissionTestEnv(t, models.PermissionMap{})

	canView, err := svc.CanView(user, models.FunctionWorkSchedules)
	require.NoError(t, err)
	assert.False(t, canView)

	canEdit, err := svc.CanEdit(user, models.FunctionWorkSchedules)
	require.NoError(t, err)
	assert.False(t, canEdit)
}

func TestPermission_ViewDoesNotImplyEdit(t *testing.T) {
	svc, user, _ := newPermissionTestEnv(t, models.PermissionMap{
		models.FunctionWorkSchedules: models.PermissionView,
	})

	canView, err := svc.CanView(user, models.FunctionWorkSchedules)
	require.NoError(t, err)
	assert.True(t, canView)

	canEdit, err := svc.CanEdit(user, models.FunctionWorkSchedules)
	require.NoError(t, err)
	assert.False(t, canEdit)
}

func TestPermission_EditImpliesView(t *testing.T) {
	svc, user, _ := newPermissionTestEnv(t, models.PermissionMap{
		models.FunctionHolidays: models.PermissionEdit,
	})

	canView, err := svc.CanView(user, models.FunctionHolidays)
	require.NoError(t, err)
	assert.True(t, canView)
}

func TestPermission_MissingGroupDeniesEverything(t *testing.T) {
	svc, _, _ := newPermissionTestEnv(t, models.PermissionMap{})
	orphan := &models.SystemUser{ID: 2, Username: "orphan", UserGroupID: 42}

	canView, err := svc.CanView(orphan, models.FunctionUsers)
	require.NoError(t, err)
	assert.False(t, canView)
}

func TestPermission_StaffScheduleNeedsBothLayers(t *testing.T) {
	svc, user, schedPermRepo := newPermissionTestEnv(t, models.PermissionMap{
		models.FunctionWorkSchedules: models.PermissionEdit,
	})

	// Function-level EDIT alone is not enough.
	allowed, err := svc.CanEditStaffSchedule(user, 5)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, schedPermRepo.Grant(user.ID, 5))
	allowed, err = svc.CanEditStaffSchedule(user, 5)
	require.NoError(t, err)
	assert.True(t, allowed)

	// The grant is per staff member.
	allowed, err = svc.CanEditStaffSchedule(user, 6)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermission_GrantWithoutFunctionEditIsUseless(t *testing.T) {
	svc, user, schedPermRepo := newPermissionTestEnv(t, models.PermissionMap{
		models.FunctionWorkSchedules: models.PermissionView,
	})
	require.NoError(t, schedPermRepo.Grant(user.ID, 5))

	allowed, err := svc.CanEditStaffSchedule(user, 5)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermission_RequireEditWrapsForbidden(t *testing.T) {
	svc, user, _ := newPermissionTestEnv(t, models.PermissionMap{})

	err := svc.RequireEdit(user, models.FunctionStaff)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPermission_EditableStaffIDs(t *testing.T) {
	svc, user, schedPermRepo := newPermissionTestEnv(t, models.PermissionMap{})
	require.NoError(t, schedPermRepo.Grant(user.ID, 7))
	require.NoError(t, schedPermRepo.Grant(user.ID, 3))
	require.NoError(t, schedPermRepo.Grant(99, 4))

	ids, err := svc.EditableStaffIDs(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7}, ids)
}

func TestPermission_EditableStaffIDsEmptyWithoutGrants(t *testing.T) {
	svc, user, _ := newPermissionTestEnv(t, models.PermissionMap{})

	// Empty, not nil, so the profile payload serializes as [].
	ids, err := svc.EditableStaffIDs(user.ID)
	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Empty(t, ids)
}
