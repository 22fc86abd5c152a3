// Package course holds the authoritative in-memory attendance state. Every
// mutation is applied in memory first and then handed to the write-behind
// queue; persistence failures never roll the state back.
package course

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
	"github.com/ilyadubrovsky/tracking-attendance/internal/validation"
)

type svc struct {
	mu           sync.RWMutex
	cfg          domain.CourseConfig
	classDays    []string
	units        []domain.Unit
	students     []domain.Student
	attendance   domain.AttendanceTable
	selectedDate string

	courseConfigRepo repository.CourseConfig
	unitsRepo        repository.Units
	studentsRepo     repository.Students
	attendanceRepo   repository.Attendance
	writeBehind      service.WriteBehind
	idProvider       domain.IDProvider
	validator        *validation.Validator
}

func NewService(
	courseConfigRepo repository.CourseConfig,
	unitsRepo repository.Units,
	studentsRepo repository.Students,
	attendanceRepo repository.Attendance,
	writeBehind service.WriteBehind,
	idProvider domain.IDProvider,
	validator *validation.Validator,
) *svc {
	s := &svc{
		courseConfigRepo: courseConfigRepo,
		unitsRepo:        unitsRepo,
		studentsRepo:     studentsRepo,
		attendanceRepo:   attendanceRepo,
		writeBehind:      writeBehind,
		idProvider:       idProvider,
		validator:        validator,
		attendance:       make(domain.AttendanceTable),
		units:            make([]domain.Unit, 0),
		students:         make([]domain.Student, 0),
	}
	s.setConfig(domain.DefaultCourseConfig())

	return s
}

// Load replaces the in-memory state with what the datastore holds. A
// datastore without a saved configuration gets the default one.
func (s *svc) Load(ctx context.Context) error {
	cfg, err := s.courseConfigRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("courseConfigRepo.Get: %w", err)
	}
	units, err := s.unitsRepo.Units(ctx)
	if err != nil {
		return fmt.Errorf("unitsRepo.Units: %w", err)
	}
	students, err := s.studentsRepo.Students(ctx)
	if err != nil {
		return fmt.Errorf("studentsRepo.Students: %w", err)
	}
	table, err := s.attendanceRepo.Table(ctx)
	if err != nil {
		return fmt.Errorf("attendanceRepo.Table: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg == nil {
		log.Info().Msg("no saved course config, using defaults")
		s.setConfig(domain.DefaultCourseConfig())
		s.enqueueConfig()
	} else {
		s.setConfig(*cfg)
	}
	s.units = units
	s.students = students
	s.attendance = table
	s.selectedDate = firstDay(s.classDays)

	log.Info().
		Int("units", len(units)).
		Int("students", len(students)).
		Int("class_days", len(s.classDays)).
		Msg("course state loaded")

	return nil
}

func (s *svc) Flush(ctx context.Context) {
	s.writeBehind.Flush(ctx)
}

func (s *svc) Config() domain.CourseConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg.Clone()
}

func (s *svc) UpdateConfig(cfg domain.CourseConfig) error {
	if err := s.validator.CourseConfig(cfg); err != nil {
		return fmt.Errorf("validator.CourseConfig: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setConfig(cfg.Clone())
	s.enqueueConfig()

	return nil
}

func (s *svc) ClassDays() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string{}, s.classDays...)
}

func (s *svc) CourseHours() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return float64(len(s.classDays)) * s.cfg.HoursPerDay
}

func (s *svc) SelectedDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selectedDate
}

func (s *svc) SelectDate(date string) error {
	if !calendar.IsDate(date) {
		return fmt.Errorf("calendar.IsDate(%q): %w", date, ierrors.ErrInvalidDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if calendar.Index(s.classDays, date) < 0 {
		return fmt.Errorf("calendar.Index(%q): %w", date, ierrors.ErrNotClassDay)
	}
	s.selectedDate = date

	return nil
}

// NextDay moves the selection to the following class day and stays put on
// the last one.
func (s *svc) NextDay() string {
	return s.moveSelection(1)
}

func (s *svc) PrevDay() string {
	return s.moveSelection(-1)
}

func (s *svc) moveSelection(step int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := calendar.Index(s.classDays, s.selectedDate)
	if i < 0 {
		s.selectedDate = firstDay(s.classDays)
		return s.selectedDate
	}
	if next := i + step; next >= 0 && next < len(s.classDays) {
		s.selectedDate = s.classDays[next]
	}

	return s.selectedDate
}

// setConfig must be called with mu held.
func (s *svc) setConfig(cfg domain.CourseConfig) {
	s.cfg = cfg
	s.classDays = calendar.ClassDays(cfg)
	if calendar.Index(s.classDays, s.selectedDate) < 0 {
		s.selectedDate = firstDay(s.classDays)
	}
}

func firstDay(days []string) string {
	if len(days) == 0 {
		return ""
	}
	return days[0]
}
