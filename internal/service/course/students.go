package course

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/roster"
)

func (s *svc) Students() []domain.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Student{}, s.students...)
}

func (s *svc) AddStudent(name string) (domain.Student, error) {
	students, err := s.addStudents([]string{strings.TrimSpace(name)})
	if err != nil {
		return domain.Student{}, err
	}
	return students[0], nil
}

// AddStudentsBulk takes one name per line and skips blank lines.
func (s *svc) AddStudentsBulk(text string) ([]domain.Student, error) {
	names := roster.ParseLines(text)
	if len(names) == 0 {
		return nil, fmt.Errorf("roster.ParseLines: %w", ierrors.ErrEmptyRoster)
	}
	return s.addStudents(names)
}

func (s *svc) ImportRosterHTML(r io.Reader) ([]domain.Student, error) {
	names, err := roster.ParseHTML(r)
	if err != nil {
		return nil, fmt.Errorf("roster.ParseHTML: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("roster.ParseHTML: %w", ierrors.ErrEmptyRoster)
	}
	return s.addStudents(names)
}

// addStudents validates every name before adding any of them.
func (s *svc) addStudents(names []string) ([]domain.Student, error) {
	students := make([]domain.Student, 0, len(names))
	for _, name := range names {
		student := domain.Student{
			ID:   s.idProvider.NewID(),
			Name: name,
		}
		if err := s.validator.Student(student); err != nil {
			return nil, fmt.Errorf("validator.Student: %w", err)
		}
		students = append(students, student)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = append(s.students, students...)
	for _, student := range students {
		s.enqueueStudent(student.ID)
	}

	return students, nil
}

// RemoveStudent drops the student together with every mark they have.
func (s *svc) RemoveStudent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.studentIndex(id)
	if i < 0 {
		return fmt.Errorf("studentIndex(%q): %w", id, ierrors.ErrStudentNotFound)
	}
	s.removeStudentAt(i)

	return nil
}

func (s *svc) RemoveAllStudents() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.students)
	for len(s.students) > 0 {
		s.removeStudentAt(len(s.students) - 1)
	}

	log.Info().Int("students", removed).Msg("all students removed")

	return removed
}

// removeStudentAt must be called with mu held.
func (s *svc) removeStudentAt(i int) {
	id := s.students[i].ID
	s.students = append(s.students[:i], s.students[i+1:]...)
	delete(s.attendance, id)
	s.enqueueStudent(id)
}

func (s *svc) studentIndex(id string) int {
	for i := range s.students {
		if s.students[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *svc) findStudent(id string) (domain.Student, bool) {
	if i := s.studentIndex(id); i >= 0 {
		return s.students[i], true
	}
	return domain.Student{}, false
}
