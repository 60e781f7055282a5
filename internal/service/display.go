package service

import (
	"time"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"
	"branch-scheduler/pkg/datespan"

	"github.com/sirupsen/logrus"
)

// DisplayEntry is one line on the lobby board. Synthesized entries are
// computed fallbacks for board members with no stored schedule on a working
// weekday; they never exist as rows.
type DisplayEntry struct {
	WorkType      string     `json:"work_type"`
	CustomContent string     `json:"custom_content,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Synthesized   bool       `json:"synthesized"`
}

type DisplayStaff struct {
	StaffID       uint           `json:"staff_id"`
	FullName      string         `json:"full_name"`
	PositionShort string         `json:"position_short,omitempty"`
	Entries       []DisplayEntry `json:"entries"`
}

type DisplayDepartment struct {
	DepartmentID uint           `json:"department_id"`
	Name         string         `json:"name"`
	Staff        []DisplayStaff `json:"staff"`
}

type DisplayRoom struct {
	RoomID   uint                     `json:"room_id"`
	Name     string                   `json:"name"`
	Location string                   `json:"location,omitempty"`
	Meetings []models.MeetingSchedule `json:"meetings"`
}

type DisplayBoard struct {
	Date        time.Time           `json:"date"`
	Departments []DisplayDepartment `json:"departments"`
	Rooms       []DisplayRoom       `json:"rooms"`
}

// DisplayService renders the public read-only board: today's work schedules
// grouped by department plus today's meetings per room. No authentication;
// the data is already public inside the branch.
type DisplayService struct {
	deptRepo   repository.DepartmentRepository
	staffRepo  repository.StaffRepository
	wsRepo     repository.WorkScheduleRepository
	msRepo     repository.MeetingScheduleRepository
	roomRepo   repository.MeetingRoomRepository
	holidaySvc *HolidayService
	logger     *logrus.Logger
	now        func() time.Time
}

func NewDisplayService(
	deptRepo repository.DepartmentRepository,
	staffRepo repository.StaffRepository,
	wsRepo repository.WorkScheduleRepository,
	msRepo repository.MeetingScheduleRepository,
	roomRepo repository.MeetingRoomRepository,
	holidaySvc *HolidayService,
	loc *time.Location,
	logger *logrus.Logger,
) *DisplayService {
	return &DisplayService{
		deptRepo:   deptRepo,
		staffRepo:  staffRepo,
		wsRepo:     wsRepo,
		msRepo:     msRepo,
		roomRepo:   roomRepo,
		holidaySvc: holidaySvc,
		logger:     logger,
		// "Today" is the branch's calendar day, not the server's.
		now: func() time.Time { return time.Now().In(loc) },
	}
}

// Board builds the display for one date.
func (s *DisplayService) Board(date time.Time) (*DisplayBoard, error) {
	day := datespan.Midnight(date)
	dayEnd := datespan.EndOfDay(day)

	schedules, err := s.wsRepo.ListOverlapping(day, dayEnd)
	if err != nil {
		return nil, err
	}
	byStaff := make(map[uint][]models.WorkSchedule)
	for _, ws := range schedules {
		byStaff[ws.StaffID] = append(byStaff[ws.StaffID], ws)
	}

	isHoliday, err := s.holidaySvc.IsHoliday(day)
	if err != nil {
		return nil, err
	}
	workingWeekday := !datespan.IsWeekend(day) && !isHoliday

	departments, err := s.deptRepo.GetAll()
	if err != nil {
		return nil, err
	}

	board := &DisplayBoard{Date: day}
	for _, dept := range departments {
		staff, err := s.staffRepo.GetByDepartment(dept.ID)
		if err != nil {
			return nil, err
		}

		displayDept := DisplayDepartment{DepartmentID: dept.ID, Name: dept.Name}
		for _, member := range staff {
			entry := DisplayStaff{
				StaffID:       member.ID,
				FullName:      member.FullName,
				PositionShort: member.PositionShort,
			}
			for _, ws := range byStaff[member.ID] {
				start := ws.StartTime
				end := ws.EndTime
				entry.Entries = append(entry.Entries, DisplayEntry{
					WorkType:      ws.WorkType,
					CustomContent: ws.CustomContent,
					StartTime:     &start,
					EndTime:       &end,
				})
			}
			// Board members with nothing scheduled on a working weekday are
			// shown as working at the branch; the fallback stays in the
			// response and is never persisted.
			if len(entry.Entries) == 0 && member.IsBoardMember && workingWeekday {
				entry.Entries = append(entry.Entries, DisplayEntry{
					WorkType:    models.WorkTypeBranch,
					Synthesized: true,
				})
			}
			displayDept.Staff = append(displayDept.Staff, entry)
		}
		board.Departments = append(board.Departments, displayDept)
	}

	rooms, err := s.roomRepo.GetAll()
	if err != nil {
		return nil, err
	}
	meetings, err := s.msRepo.ListOverlapping(day, dayEnd)
	if err != nil {
		return nil, err
	}
	byRoom := make(map[uint][]models.MeetingSchedule)
	for _, ms := range meetings {
		byRoom[ms.RoomID] = append(byRoom[ms.RoomID], ms)
	}
	for _, room := range rooms {
		board.Rooms = append(board.Rooms, DisplayRoom{
			RoomID:   room.ID,
			Name:     room.Name,
			Location: room.Location,
			Meetings: byRoom[room.ID],
		})
	}

	return board, nil
}

// TodayBoard renders the board for the current date.
func (s *DisplayService) TodayBoard() (*DisplayBoard, error) {
	return s.Board(s.now())
}
