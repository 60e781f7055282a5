package service

import (
	"fmt"
	"time"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"
	"branch-scheduler/pkg/datespan"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var workTypeLabels = map[string]string{
	models.WorkTypeBranch:         "At branch",
	models.WorkTypeLeave:          "Leave",
	models.WorkTypeLeadershipDuty: "Leadership duty",
	models.WorkTypeDomesticTrip:   "Domestic trip",
	models.WorkTypeForeignTrip:    "Foreign trip",
	models.WorkTypeCustomerVisit:  "Customer visit",
	models.WorkTypeOther:          "Other",
}

// ReportService exports the schedule board as an Excel workbook: one row
// per staff member, one column per day in the requested range.
type ReportService struct {
	staffRepo repository.StaffRepository
	wsRepo    repository.WorkScheduleRepository
	permSvc   *PermissionService
	logger    *logrus.Logger
}

func NewReportService(
	staffRepo repository.StaffRepository,
	wsRepo repository.WorkScheduleRepository,
	permSvc *PermissionService,
	logger *logrus.Logger,
) *ReportService {
	return &ReportService{
		staffRepo: staffRepo,
		wsRepo:    wsRepo,
		permSvc:   permSvc,
		logger:    logger,
	}
}

// BuildScheduleWorkbook renders schedules overlapping [from, to]. Ranges
// over 62 days are refused to keep the sheet readable.
func (s *ReportService) BuildScheduleWorkbook(actor *models.SystemUser, from, to time.Time) (*excelize.File, error) {
	if err := s.permSvc.RequireView(actor, models.FunctionWorkSchedules); err != nil {
		return nil, err
	}

	days := datespan.Days(from, to)
	if len(days) == 0 {
		return nil, ErrInvalidRange
	}
	if len(days) > 62 {
		return nil, fmt.Errorf("report range of %d days too long: %w", len(days), ErrInvalidRange)
	}

	staff, err := s.staffRepo.GetAll()
	if err != nil {
		return nil, err
	}
	schedules, err := s.wsRepo.ListOverlapping(days[0], datespan.EndOfDay(days[len(days)-1]))
	if err != nil {
		return nil, err
	}

	// staff id -> day index -> labels
	cells := make(map[uint]map[int][]string)
	for _, ws := range schedules {
		label := workTypeLabels[ws.WorkType]
		if ws.WorkType == models.WorkTypeOther && ws.CustomContent != "" {
			label = ws.CustomContent
		}
		for i, day := range days {
			if ws.StartTime.After(datespan.EndOfDay(day)) || ws.EndTime.Before(day) {
				continue
			}
			if cells[ws.StaffID] == nil {
				cells[ws.StaffID] = make(map[int][]string)
			}
			cells[ws.StaffID][i] = append(cells[ws.StaffID][i], label)
		}
	}

	f := excelize.NewFile()
	sheet := "Schedules"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	if err := setCell(f, sheet, 1, 1, "Staff"); err != nil {
		return nil, err
	}
	for i, day := range days {
		if err := setCell(f, sheet, i+2, 1, day.Format("01-02")); err != nil {
			return nil, err
		}
	}
	lastCol, err := excelize.CoordinatesToCellName(len(days)+1, 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return nil, err
	}

	for row, member := range staff {
		if err := setCell(f, sheet, 1, row+2, member.FullName); err != nil {
			return nil, err
		}
		for i := range days {
			labels := cells[member.ID][i]
			if len(labels) == 0 {
				continue
			}
			value := labels[0]
			for _, extra := range labels[1:] {
				value += ", " + extra
			}
			if err := setCell(f, sheet, i+2, row+2, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"from":  days[0].Format("2006-01-02"),
		"to":    days[len(days)-1].Format("2006-01-02"),
		"staff": len(staff),
	}).Info("Schedule workbook built")
	return f, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
