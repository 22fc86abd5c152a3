// Package inmem keeps course data in process memory. It mirrors the
// Postgres repositories, including the student foreign key on marks.
package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
)

type Store struct {
	mu         sync.RWMutex
	config     *domain.CourseConfig
	units      []domain.Unit
	students   []domain.Student
	attendance domain.AttendanceTable
}

func NewStore() *Store {
	return &Store{
		attendance: make(domain.AttendanceTable),
	}
}

func (s *Store) CourseConfig() *courseConfigRepo {
	return &courseConfigRepo{store: s}
}

func (s *Store) Units() *unitsRepo {
	return &unitsRepo{store: s}
}

func (s *Store) Students() *studentsRepo {
	return &studentsRepo{store: s}
}

func (s *Store) Attendance() *attendanceRepo {
	return &attendanceRepo{store: s}
}

type courseConfigRepo struct {
	store *Store
}

func (r *courseConfigRepo) Get(_ context.Context) (*domain.CourseConfig, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if r.store.config == nil {
		return nil, nil
	}
	cfg := r.store.config.Clone()
	return &cfg, nil
}

func (r *courseConfigRepo) Save(_ context.Context, cfg *domain.CourseConfig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clone := cfg.Clone()
	r.store.config = &clone
	return nil
}

type unitsRepo struct {
	store *Store
}

func (r *unitsRepo) Units(_ context.Context) ([]domain.Unit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	units := make([]domain.Unit, 0, len(r.store.units))
	for _, unit := range r.store.units {
		units = append(units, unit.Clone())
	}
	return units, nil
}

func (r *unitsRepo) Upsert(_ context.Context, units []domain.Unit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, unit := range units {
		found := false
		for i := range r.store.units {
			if r.store.units[i].ID == unit.ID {
				r.store.units[i] = unit.Clone()
				found = true
				break
			}
		}
		if !found {
			r.store.units = append(r.store.units, unit.Clone())
		}
	}
	return nil
}

func (r *unitsRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.units {
		if r.store.units[i].ID == id {
			r.store.units = append(r.store.units[:i], r.store.units[i+1:]...)
			break
		}
	}
	return nil
}

type studentsRepo struct {
	store *Store
}

func (r *studentsRepo) Students(_ context.Context) ([]domain.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	students := make([]domain.Student, len(r.store.students))
	copy(students, r.store.students)
	return students, nil
}

func (r *studentsRepo) Upsert(_ context.Context, students []domain.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, student := range students {
		found := false
		for i := range r.store.students {
			if r.store.students[i].ID == student.ID {
				r.store.students[i] = student
				found = true
				break
			}
		}
		if !found {
			r.store.students = append(r.store.students, student)
		}
	}
	return nil
}

func (r *studentsRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.students {
		if r.store.students[i].ID == id {
			r.store.students = append(r.store.students[:i], r.store.students[i+1:]...)
			break
		}
	}
	delete(r.store.attendance, id)
	return nil
}

type attendanceRepo struct {
	store *Store
}

func (r *attendanceRepo) Table(_ context.Context) (domain.AttendanceTable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.attendance.Clone(), nil
}

func (r *attendanceRepo) SetMark(_ context.Context, studentID, date string, mark domain.Mark) error {
	if !calendar.IsDate(date) {
		return fmt.Errorf("calendar.IsDate: %w", ierrors.ErrInvalidDate)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if mark != domain.MarkUnset && !r.store.hasStudent(studentID) {
		return fmt.Errorf("store.hasStudent: %w", ierrors.ErrStudentNotFound)
	}
	r.store.attendance.Set(studentID, date, mark)
	return nil
}

func (r *attendanceRepo) ClearMarks(_ context.Context, date string, studentIDs []string) error {
	if !calendar.IsDate(date) {
		return fmt.Errorf("calendar.IsDate: %w", ierrors.ErrInvalidDate)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.attendance.ClearDate(date, studentIDs)
	return nil
}

func (s *Store) hasStudent(id string) bool {
	for _, student := range s.students {
		if student.ID == id {
			return true
		}
	}
	return false
}
