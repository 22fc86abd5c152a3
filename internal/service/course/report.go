package course

import (
	"fmt"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
	"github.com/ilyadubrovsky/tracking-attendance/internal/summary"
)

func (s *svc) Summary() domain.Matrix {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.summary()
}

func (s *svc) Overview() service.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totalJustified := make(map[string]int, len(s.students))
	for _, student := range s.students {
		totalJustified[student.ID] = summary.TotalJustified(student.ID, s.attendance, s.classDays)
	}

	return service.Overview{
		Config:         s.cfg.Clone(),
		ClassDays:      append([]string{}, s.classDays...),
		Matrix:         s.summary(),
		TotalJustified: totalJustified,
	}
}

func (s *svc) StudentReport(id string) (service.StudentReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.studentIndex(id) < 0 {
		return service.StudentReport{}, fmt.Errorf("studentIndex(%q): %w", id, ierrors.ErrStudentNotFound)
	}

	matrix := s.summary()
	studentSummary, _ := matrix.Student(id)

	days := make([]service.DayMark, 0, len(s.classDays))
	for _, date := range s.classDays {
		days = append(days, service.DayMark{
			Date: date,
			Mark: s.attendance.Get(id, date),
		})
	}

	return service.StudentReport{
		Summary:        studentSummary,
		Units:          matrix.Units,
		Days:           days,
		TotalJustified: summary.TotalJustified(id, s.attendance, s.classDays),
		Config:         s.cfg.Clone(),
	}, nil
}

// summary must be called with mu held.
func (s *svc) summary() domain.Matrix {
	return summary.Build(
		append([]domain.Student{}, s.students...),
		s.attendance,
		s.units,
		append([]string{}, s.classDays...),
		s.cfg.Clone(),
	)
}
