package course

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
)

func (s *svc) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	units := make([]domain.Unit, 0, len(s.units))
	for _, unit := range s.units {
		units = append(units, unit.Clone())
	}

	return domain.Snapshot{
		Config:       s.cfg.Clone(),
		Units:        units,
		Students:     append([]domain.Student{}, s.students...),
		Attendance:   s.attendance.Clone(),
		SelectedDate: s.selectedDate,
	}
}

// Restore replaces the whole state at once. Nothing is changed when any
// part of the snapshot is rejected. Marks of unknown students are dropped.
func (s *svc) Restore(snapshot domain.Snapshot) error {
	if err := s.validator.CourseConfig(snapshot.Config); err != nil {
		return fmt.Errorf("validator.CourseConfig: %w", err)
	}
	unitIDs := make(map[string]struct{}, len(snapshot.Units))
	for _, unit := range snapshot.Units {
		if err := s.validator.Unit(unit); err != nil {
			return fmt.Errorf("validator.Unit: %w", err)
		}
		if _, dup := unitIDs[unit.ID]; dup {
			return fmt.Errorf("duplicate unit %q: %w", unit.ID, ierrors.ErrInvalidBackup)
		}
		unitIDs[unit.ID] = struct{}{}
	}
	studentIDs := make(map[string]struct{}, len(snapshot.Students))
	for _, student := range snapshot.Students {
		if err := s.validator.Student(student); err != nil {
			return fmt.Errorf("validator.Student: %w", err)
		}
		if _, dup := studentIDs[student.ID]; dup {
			return fmt.Errorf("duplicate student %q: %w", student.ID, ierrors.ErrInvalidBackup)
		}
		studentIDs[student.ID] = struct{}{}
	}

	table := make(domain.AttendanceTable)
	for studentID, byDate := range snapshot.Attendance {
		if _, ok := studentIDs[studentID]; !ok {
			log.Warn().Str("student", studentID).Msg("restore: marks of unknown student dropped")
			continue
		}
		for date, mark := range byDate {
			if !mark.Valid() || !calendar.IsDate(date) {
				return fmt.Errorf("mark %q on %q: %w", mark, date, ierrors.ErrInvalidBackup)
			}
			table.Set(studentID, date, mark)
		}
	}

	units := make([]domain.Unit, 0, len(snapshot.Units))
	for _, unit := range snapshot.Units {
		units = append(units, unit.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.attendance
	previousUnits := s.units
	previousStudents := s.students

	s.setConfig(snapshot.Config.Clone())
	s.units = units
	s.students = append([]domain.Student{}, snapshot.Students...)
	s.attendance = table
	s.selectedDate = snapshot.SelectedDate
	if calendar.Index(s.classDays, s.selectedDate) < 0 {
		s.selectedDate = firstDay(s.classDays)
	}

	s.enqueueConfig()
	for _, unit := range previousUnits {
		if _, ok := unitIDs[unit.ID]; !ok {
			s.enqueueUnit(unit.ID)
		}
	}
	for _, unit := range s.units {
		s.enqueueUnit(unit.ID)
	}
	for _, student := range previousStudents {
		if _, ok := studentIDs[student.ID]; !ok {
			s.enqueueStudent(student.ID)
		}
	}
	for _, student := range s.students {
		s.enqueueStudent(student.ID)
	}
	for studentID, byDate := range previous {
		if _, ok := studentIDs[studentID]; !ok {
			continue
		}
		for date := range byDate {
			s.enqueueMark(studentID, date)
		}
	}
	for studentID, byDate := range s.attendance {
		for date := range byDate {
			s.enqueueMark(studentID, date)
		}
	}

	log.Info().
		Int("units", len(s.units)).
		Int("students", len(s.students)).
		Msg("course state restored")

	return nil
}
