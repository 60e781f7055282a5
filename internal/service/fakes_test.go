package service

import (
	"io"
	"time"

	"branch-scheduler/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeUserGroupRepo struct {
	groups map[uint]*models.UserGroup
	nextID uint
}

func newFakeUserGroupRepo() *fakeUserGroupRepo {
	return &fakeUserGroupRepo{groups: make(map[uint]*models.UserGroup), nextID: 1}
}

func (f *fakeUserGroupRepo) Create(group *models.UserGroup) error {
	group.ID = f.nextID
	f.nextID++
	f.groups[group.ID] = group
	return nil
}

func (f *fakeUserGroupRepo) Update(group *models.UserGroup) error {
	f.groups[group.ID] = group
	return nil
}

func (f *fakeUserGroupRepo) Delete(id uint) error {
	delete(f.groups, id)
	return nil
}

func (f *fakeUserGroupRepo) GetByID(id uint) (*models.UserGroup, error) {
	return f.groups[id], nil
}

func (f *fakeUserGroupRepo) GetByName(name string) (*models.UserGroup, error) {
	for _, group := range f.groups {
		if group.Name == name {
			return group, nil
		}
	}
	return nil, nil
}

func (f *fakeUserGroupRepo) GetAll() ([]models.UserGroup, error) {
	var out []models.UserGroup
	for _, group := range f.groups {
		out = append(out, *group)
	}
	return out, nil
}

type fakeDepartmentRepo struct {
	departments map[uint]*models.Department
	nextID      uint
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[uint]*models.Department), nextID: 1}
}

func (f *fakeDepartmentRepo) Create(department *models.Department) error {
	department.ID = f.nextID
	f.nextID++
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentRepo) Update(department *models.Department) error {
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentRepo) Delete(id uint) error {
	delete(f.departments, id)
	return nil
}

func (f *fakeDepartmentRepo) GetByID(id uint) (*models.Department, error) {
	return f.departments[id], nil
}

func (f *fakeDepartmentRepo) GetAll() ([]models.Department, error) {
	var out []models.Department
	for _, department := range f.departments {
		out = append(out, *department)
	}
	return out, nil
}

type grantKey struct {
	userID  uint
	staffID uint
}

type fakeSchedulePermissionRepo struct {
	grants map[grantKey]struct{}
}

func newFakeSchedulePermissionRepo() *fakeSchedulePermissionRepo {
	return &fakeSchedulePermissionRepo{grants: make(map[grantKey]struct{})}
}

func (f *fakeSchedulePermissionRepo) Grant(userID, staffID uint) error {
	f.grants[grantKey{userID, staffID}] = struct{}{}
	return nil
}

func (f *fakeSchedulePermissionRepo) Revoke(userID, staffID uint) error {
	delete(f.grants, grantKey{userID, staffID})
	return nil
}

func (f *fakeSchedulePermissionRepo) ListStaffIDsForUser(userID uint) ([]uint, error) {
	var out []uint
	for key := range f.grants {
		if key.userID == userID {
			out = append(out, key.staffID)
		}
	}
	return out, nil
}

func (f *fakeSchedulePermissionRepo) Exists(userID, staffID uint) (bool, error) {
	_, ok := f.grants[grantKey{userID, staffID}]
	return ok, nil
}

func (f *fakeSchedulePermissionRepo) DeleteByStaff(staffID uint) error {
	for key := range f.grants {
		if key.staffID == staffID {
			delete(f.grants, key)
		}
	}
	return nil
}

func (f *fakeSchedulePermissionRepo) DeleteByUser(userID uint) error {
	for key := range f.grants {
		if key.userID == userID {
			delete(f.grants, key)
		}
	}
	return nil
}

type fakeStaffRepo struct {
	staff  map[uint]*models.Staff
	nextID uint
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uint]*models.Staff), nextID: 1}
}

func (f *fakeStaffRepo) Create(staff *models.Staff) error {
	staff.ID = f.nextID
	f.nextID++
	f.staff[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) Update(staff *models.Staff) error {
	f.staff[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) Delete(id uint) error {
	delete(f.staff, id)
	return nil
}

func (f *fakeStaffRepo) GetByID(id uint) (*models.Staff, error) {
	return f.staff[id], nil
}

func (f *fakeStaffRepo) GetByEmployeeID(employeeID string) (*models.Staff, error) {
	for _, member := range f.staff {
		if member.EmployeeID == employeeID {
			return member, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) GetAll() ([]models.Staff, error) {
	var out []models.Staff
	for _, member := range f.staff {
		out = append(out, *member)
	}
	return out, nil
}

func (f *fakeStaffRepo) GetByDepartment(departmentID uint) ([]models.Staff, error) {
	var out []models.Staff
	for _, member := range f.staff {
		if member.DepartmentID == departmentID {
			out = append(out, *member)
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) CountByDepartment(departmentID uint) (int64, error) {
	members, _ := f.GetByDepartment(departmentID)
	return int64(len(members)), nil
}

type fakeWorkScheduleRepo struct {
	schedules map[uint]*models.WorkSchedule
	nextID    uint
}

func newFakeWorkScheduleRepo() *fakeWorkScheduleRepo {
	return &fakeWorkScheduleRepo{schedules: make(map[uint]*models.WorkSchedule), nextID: 1}
}

func (f *fakeWorkScheduleRepo) Create(schedule *models.WorkSchedule) error {
	schedule.ID = f.nextID
	f.nextID++
	copied := *schedule
	f.schedules[schedule.ID] = &copied
	return nil
}

func (f *fakeWorkScheduleRepo) Update(schedule *models.WorkSchedule) error {
	copied := *schedule
	f.schedules[schedule.ID] = &copied
	return nil
}

func (f *fakeWorkScheduleRepo) Delete(id uint) error {
	if _, ok := f.schedules[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.schedules, id)
	return nil
}

func (f *fakeWorkScheduleRepo) GetByID(id uint) (*models.WorkSchedule, error) {
	if schedule, ok := f.schedules[id]; ok {
		copied := *schedule
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeWorkScheduleRepo) ListForStaff(staffID uint, from, to time.Time) ([]models.WorkSchedule, error) {
	var out []models.WorkSchedule
	for _, schedule := range f.schedules {
		if schedule.StaffID == staffID && !schedule.StartTime.After(to) && !schedule.EndTime.Before(from) {
			out = append(out, *schedule)
		}
	}
	return out, nil
}

func (f *fakeWorkScheduleRepo) ListOverlapping(from, to time.Time) ([]models.WorkSchedule, error) {
	var out []models.WorkSchedule
	for _, schedule := range f.schedules {
		if !schedule.StartTime.After(to) && !schedule.EndTime.Before(from) {
			out = append(out, *schedule)
		}
	}
	return out, nil
}

func (f *fakeWorkScheduleRepo) CountOverlappingDay(staffID uint, dayStart, dayEnd time.Time, excludeID uint) (int64, error) {
	var count int64
	for _, schedule := range f.schedules {
		if schedule.StaffID != staffID || schedule.ID == excludeID {
			continue
		}
		if !schedule.StartTime.After(dayEnd) && !schedule.EndTime.Before(dayStart) {
			count++
		}
	}
	return count, nil
}

func (f *fakeWorkScheduleRepo) CountByStaff(staffID uint) (int64, error) {
	var count int64
	for _, schedule := range f.schedules {
		if schedule.StaffID == staffID {
			count++
		}
	}
	return count, nil
}

type fakeHolidayRepo struct {
	holidays map[uint]*models.Holiday
	nextID   uint
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{holidays: make(map[uint]*models.Holiday), nextID: 1}
}

func (f *fakeHolidayRepo) Create(holiday *models.Holiday) error {
	holiday.ID = f.nextID
	f.nextID++
	if holiday.IsRecurring {
		holiday.MonthDay = holiday.Date.Format("01-02")
	}
	f.holidays[holiday.ID] = holiday
	return nil
}

func (f *fakeHolidayRepo) Update(holiday *models.Holiday) error {
	if holiday.IsRecurring {
		holiday.MonthDay = holiday.Date.Format("01-02")
	} else {
		holiday.MonthDay = ""
	}
	f.holidays[holiday.ID] = holiday
	return nil
}

func (f *fakeHolidayRepo) Delete(id uint) error {
	delete(f.holidays, id)
	return nil
}

func (f *fakeHolidayRepo) GetByID(id uint) (*models.Holiday, error) {
	return f.holidays[id], nil
}

func (f *fakeHolidayRepo) GetAll() ([]models.Holiday, error) {
	var out []models.Holiday
	for _, holiday := range f.holidays {
		out = append(out, *holiday)
	}
	return out, nil
}

type fakeReservationRepo struct {
	reservations map[uint]*models.MeetingRoomReservation
	nextID       uint
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uint]*models.MeetingRoomReservation), nextID: 1}
}

func (f *fakeReservationRepo) Create(reservation *models.MeetingRoomReservation) error {
	reservation.ID = f.nextID
	f.nextID++
	copied := *reservation
	f.reservations[reservation.ID] = &copied
	return nil
}

func (f *fakeReservationRepo) Update(reservation *models.MeetingRoomReservation) error {
	copied := *reservation
	f.reservations[reservation.ID] = &copied
	return nil
}

func (f *fakeReservationRepo) Delete(id uint) error {
	delete(f.reservations, id)
	return nil
}

func (f *fakeReservationRepo) GetByID(id uint) (*models.MeetingRoomReservation, error) {
	if reservation, ok := f.reservations[id]; ok {
		copied := *reservation
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) GetByMeetingScheduleID(meetingScheduleID uint) (*models.MeetingRoomReservation, error) {
	for _, reservation := range f.reservations {
		if reservation.MeetingScheduleID != nil && *reservation.MeetingScheduleID == meetingScheduleID {
			copied := *reservation
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) ListByRequester(userID uint) ([]models.MeetingRoomReservation, error) {
	var out []models.MeetingRoomReservation
	for _, reservation := range f.reservations {
		if reservation.RequestedBy == userID {
			out = append(out, *reservation)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListAll(statusFilter string) ([]models.MeetingRoomReservation, error) {
	var out []models.MeetingRoomReservation
	for _, reservation := range f.reservations {
		if statusFilter == "" || reservation.Status == statusFilter {
			out = append(out, *reservation)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListByRoomOverlapping(roomID uint, from, to time.Time) ([]models.MeetingRoomReservation, error) {
	var out []models.MeetingRoomReservation
	for _, reservation := range f.reservations {
		if reservation.RoomID == roomID && !reservation.StartTime.After(to) && !reservation.EndTime.Before(from) {
			out = append(out, *reservation)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CountByRoom(roomID uint) (int64, error) {
	var count int64
	for _, reservation := range f.reservations {
		if reservation.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) UpdateStatusIf(id uint, expectedStatus string, patch map[string]interface{}) (bool, error) {
	reservation, ok := f.reservations[id]
	if !ok || reservation.Status != expectedStatus {
		return false, nil
	}
	for key, value := range patch {
		switch key {
		case "status":
			reservation.Status = value.(string)
		case "rejection_reason":
			reservation.RejectionReason = value.(string)
		case "approved_by":
			if value == nil {
				reservation.ApprovedBy = nil
			} else {
				approver := value.(uint)
				reservation.ApprovedBy = &approver
			}
		case "approved_at":
			if value == nil {
				reservation.ApprovedAt = nil
			} else {
				at := value.(time.Time)
				reservation.ApprovedAt = &at
			}
		case "meeting_schedule_id":
			if value == nil {
				reservation.MeetingScheduleID = nil
			} else {
				msID := value.(uint)
				reservation.MeetingScheduleID = &msID
			}
		}
	}
	return true, nil
}

type fakeMeetingScheduleRepo struct {
	schedules map[uint]*models.MeetingSchedule
	nextID    uint
}

func newFakeMeetingScheduleRepo() *fakeMeetingScheduleRepo {
	return &fakeMeetingScheduleRepo{schedules: make(map[uint]*models.MeetingSchedule), nextID: 1}
}

func (f *fakeMeetingScheduleRepo) Create(schedule *models.MeetingSchedule) error {
	schedule.ID = f.nextID
	f.nextID++
	copied := *schedule
	f.schedules[schedule.ID] = &copied
	return nil
}

func (f *fakeMeetingScheduleRepo) Delete(id uint) error {
	delete(f.schedules, id)
	return nil
}

func (f *fakeMeetingScheduleRepo) GetByID(id uint) (*models.MeetingSchedule, error) {
	if schedule, ok := f.schedules[id]; ok {
		copied := *schedule
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeMeetingScheduleRepo) ListByRoom(roomID uint, from, to time.Time) ([]models.MeetingSchedule, error) {
	var out []models.MeetingSchedule
	for _, schedule := range f.schedules {
		if schedule.RoomID == roomID && !schedule.StartTime.After(to) && !schedule.EndTime.Before(from) {
			out = append(out, *schedule)
		}
	}
	return out, nil
}

func (f *fakeMeetingScheduleRepo) ListOverlapping(from, to time.Time) ([]models.MeetingSchedule, error) {
	var out []models.MeetingSchedule
	for _, schedule := range f.schedules {
		if !schedule.StartTime.After(to) && !schedule.EndTime.Before(from) {
			out = append(out, *schedule)
		}
	}
	return out, nil
}

func (f *fakeMeetingScheduleRepo) CountByRoom(roomID uint) (int64, error) {
	var count int64
	for _, schedule := range f.schedules {
		if schedule.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

type fakeMeetingRoomRepo struct {
	rooms  map[uint]*models.MeetingRoom
	nextID uint
}

func newFakeMeetingRoomRepo() *fakeMeetingRoomRepo {
	return &fakeMeetingRoomRepo{rooms: make(map[uint]*models.MeetingRoom), nextID: 1}
}

func (f *fakeMeetingRoomRepo) Create(room *models.MeetingRoom) error {
	room.ID = f.nextID
	f.nextID++
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeMeetingRoomRepo) Update(room *models.MeetingRoom) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeMeetingRoomRepo) Delete(id uint) error {
	delete(f.rooms, id)
	return nil
}

func (f *fakeMeetingRoomRepo) GetByID(id uint) (*models.MeetingRoom, error) {
	return f.rooms[id], nil
}

func (f *fakeMeetingRoomRepo) GetByName(name string) (*models.MeetingRoom, error) {
	for _, room := range f.rooms {
		if room.Name == name {
			return room, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingRoomRepo) GetAll() ([]models.MeetingRoom, error) {
	var out []models.MeetingRoom
	for _, room := range f.rooms {
		out = append(out, *room)
	}
	return out, nil
}
