package service

import (
	"fmt"
	"time"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

type HolidayService struct {
	repo    repository.HolidayRepository
	permSvc *PermissionService
	logger  *logrus.Logger
}

func NewHolidayService(repo repository.HolidayRepository, permSvc *PermissionService, logger *logrus.Logger) *HolidayService {
	return &HolidayService{repo: repo, permSvc: permSvc, logger: logger}
}

// IsHoliday reports whether the date matches any stored holiday, either
// exactly or through a recurring month-day.
func (s *HolidayService) IsHoliday(date time.Time) (bool, error) {
	holidays, err := s.repo.GetAll()
	if err != nil {
		return false, err
	}
	return MatchesAnyHoliday(date, holidays), nil
}

// MatchesAnyHoliday is the pure matching rule over an in-memory list.
func MatchesAnyHoliday(date time.Time, holidays []models.Holiday) bool {
	for i := range holidays {
		if holidays[i].MatchesDate(date) {
			return true
		}
	}
	return false
}

func (s *HolidayService) Create(actor *models.SystemUser, holiday *models.Holiday) (*models.Holiday, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionHolidays); err != nil {
		return nil, err
	}
	if err := validateHoliday(holiday); err != nil {
		return nil, err
	}

	if err := s.repo.Create(holiday); err != nil {
		s.logger.WithError(err).Error("Failed to create holiday")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":        holiday.ID,
		"name":      holiday.Name,
		"date":      holiday.Date.Format("2006-01-02"),
		"recurring": holiday.IsRecurring,
	}).Info("Holiday created")
	return holiday, nil
}

func (s *HolidayService) Update(actor *models.SystemUser, id uint, name string, date time.Time, isRecurring bool) (*models.Holiday, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionHolidays); err != nil {
		return nil, err
	}

	holiday, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if holiday == nil {
		return nil, fmt.Errorf("holiday %d: %w", id, ErrNotFound)
	}

	holiday.Name = name
	holiday.Date = date
	holiday.IsRecurring = isRecurring
	if err := validateHoliday(holiday); err != nil {
		return nil, err
	}

	if err := s.repo.Update(holiday); err != nil {
		s.logger.WithError(err).Error("Failed to update holiday")
		return nil, err
	}
	return holiday, nil
}

func (s *HolidayService) Delete(actor *models.SystemUser, id uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionHolidays); err != nil {
		return err
	}

	holiday, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if holiday == nil {
		return fmt.Errorf("holiday %d: %w", id, ErrNotFound)
	}
	return s.repo.Delete(id)
}

func (s *HolidayService) GetAll() ([]models.Holiday, error) {
	return s.repo.GetAll()
}

func validateHoliday(holiday *models.Holiday) error {
	if holiday.Name == "" {
		return fmt.Errorf("holiday name: %w", ErrMissingContent)
	}
	if holiday.Date.IsZero() {
		return fmt.Errorf("holiday date: %w", ErrInvalidRange)
	}
	return nil
}
