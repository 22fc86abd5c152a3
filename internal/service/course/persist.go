package course

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
)

// Write-behind operations carry no values. Each one reads the current
// in-memory record when it runs and makes the datastore match it, so a
// later run for the same key always wins.

const (
	configKey     = "config"
	unitKeyPrefix = "unit:"
	stdKeyPrefix  = "student:"
	markKeyPrefix = "mark:"
	dayKeyPrefix  = "day:"
)

func unitKey(id string) string {
	return unitKeyPrefix + id
}

func studentKey(id string) string {
	return stdKeyPrefix + id
}

func markKey(studentID, date string) string {
	return markKeyPrefix + studentID + "@" + date
}

func dayKey(date string) string {
	return dayKeyPrefix + date
}

func (s *svc) enqueueConfig() {
	s.writeBehind.Enqueue(configKey, s.syncConfig)
}

func (s *svc) enqueueUnit(id string) {
	s.writeBehind.Enqueue(unitKey(id), func(ctx context.Context) error {
		return s.syncUnit(ctx, id)
	})
}

func (s *svc) enqueueStudent(id string) {
	s.writeBehind.Enqueue(studentKey(id), func(ctx context.Context) error {
		return s.syncStudent(ctx, id)
	})
}

func (s *svc) enqueueMark(studentID, date string) {
	s.writeBehind.Enqueue(markKey(studentID, date), func(ctx context.Context) error {
		return s.syncMark(ctx, studentID, date)
	})
}

func (s *svc) enqueueDay(date string) {
	s.writeBehind.Enqueue(dayKey(date), func(ctx context.Context) error {
		return s.syncDay(ctx, date)
	})
}

func (s *svc) syncConfig(ctx context.Context) error {
	s.mu.RLock()
	cfg := s.cfg.Clone()
	s.mu.RUnlock()

	if err := s.courseConfigRepo.Save(ctx, &cfg); err != nil {
		return fmt.Errorf("courseConfigRepo.Save: %w", err)
	}
	return nil
}

func (s *svc) syncUnit(ctx context.Context, id string) error {
	s.mu.RLock()
	unit, ok := s.findUnit(id)
	s.mu.RUnlock()

	if !ok {
		if err := s.unitsRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("unitsRepo.Delete: %w", err)
		}
		return nil
	}

	if err := s.unitsRepo.Upsert(ctx, []domain.Unit{unit}); err != nil {
		return fmt.Errorf("unitsRepo.Upsert: %w", err)
	}
	return nil
}

func (s *svc) syncStudent(ctx context.Context, id string) error {
	s.mu.RLock()
	student, ok := s.findStudent(id)
	s.mu.RUnlock()

	if !ok {
		if err := s.studentsRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("studentsRepo.Delete: %w", err)
		}
		return nil
	}

	if err := s.studentsRepo.Upsert(ctx, []domain.Student{student}); err != nil {
		return fmt.Errorf("studentsRepo.Upsert: %w", err)
	}
	return nil
}

// syncMark writes the student first when the datastore does not know it
// yet, which happens when the student's own operation is still pending.
func (s *svc) syncMark(ctx context.Context, studentID, date string) error {
	s.mu.RLock()
	student, ok := s.findStudent(studentID)
	mark := s.attendance.Get(studentID, date)
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	err := s.attendanceRepo.SetMark(ctx, studentID, date, mark)
	if errors.Is(err, ierrors.ErrStudentNotFound) {
		if err = s.studentsRepo.Upsert(ctx, []domain.Student{student}); err != nil {
			return fmt.Errorf("studentsRepo.Upsert: %w", err)
		}
		err = s.attendanceRepo.SetMark(ctx, studentID, date, mark)
	}
	if err != nil {
		return fmt.Errorf("attendanceRepo.SetMark: %w", err)
	}
	return nil
}

func (s *svc) syncDay(ctx context.Context, date string) error {
	s.mu.RLock()
	cleared := make([]string, 0, len(s.students))
	for _, student := range s.students {
		if s.attendance.Get(student.ID, date) == domain.MarkUnset {
			cleared = append(cleared, student.ID)
		}
	}
	s.mu.RUnlock()

	if err := s.attendanceRepo.ClearMarks(ctx, date, cleared); err != nil {
		return fmt.Errorf("attendanceRepo.ClearMarks: %w", err)
	}
	return nil
}
