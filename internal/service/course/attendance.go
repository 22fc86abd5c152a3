package course

import (
	"fmt"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/summary"
)

func (s *svc) Mark(studentID, date string) domain.Mark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.attendance.Get(studentID, date)
}

// SetMark is last-write-wins. The date has to be well formed but need not
// be a class day.
func (s *svc) SetMark(studentID, date string, mark domain.Mark) error {
	if !mark.Valid() {
		return fmt.Errorf("mark.Valid(%q): %w", mark, ierrors.ErrInvalidMark)
	}
	if !calendar.IsDate(date) {
		return fmt.Errorf("calendar.IsDate(%q): %w", date, ierrors.ErrInvalidDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.studentIndex(studentID) < 0 {
		return fmt.Errorf("studentIndex(%q): %w", studentID, ierrors.ErrStudentNotFound)
	}
	s.attendance.Set(studentID, date, mark)
	s.enqueueMark(studentID, date)

	return nil
}

// CycleMark advances "" -> P -> A -> J -> "" and returns the new mark.
func (s *svc) CycleMark(studentID, date string) (domain.Mark, error) {
	if !calendar.IsDate(date) {
		return domain.MarkUnset, fmt.Errorf("calendar.IsDate(%q): %w", date, ierrors.ErrInvalidDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.studentIndex(studentID) < 0 {
		return domain.MarkUnset, fmt.Errorf("studentIndex(%q): %w", studentID, ierrors.ErrStudentNotFound)
	}
	mark := s.attendance.Get(studentID, date).Next()
	s.attendance.Set(studentID, date, mark)
	s.enqueueMark(studentID, date)

	return mark, nil
}

func (s *svc) MarkAllPresent(date string) error {
	if !calendar.IsDate(date) {
		return fmt.Errorf("calendar.IsDate(%q): %w", date, ierrors.ErrInvalidDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, student := range s.students {
		s.attendance.Set(student.ID, date, domain.MarkPresent)
		s.enqueueMark(student.ID, date)
	}

	return nil
}

// ClearDay unsets the date for every student and persists it as a single
// clear operation.
func (s *svc) ClearDay(date string) error {
	if !calendar.IsDate(date) {
		return fmt.Errorf("calendar.IsDate(%q): %w", date, ierrors.ErrInvalidDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.students))
	for _, student := range s.students {
		ids = append(ids, student.ID)
	}
	s.attendance.ClearDate(date, ids)
	s.enqueueDay(date)

	return nil
}

func (s *svc) DayStats(date string) (domain.DayStats, error) {
	if !calendar.IsDate(date) {
		return domain.DayStats{}, fmt.Errorf("calendar.IsDate(%q): %w", date, ierrors.ErrInvalidDate)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return summary.DayStats(date, s.students, s.attendance), nil
}
