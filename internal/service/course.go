package service

import (
	"context"
	"io"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type Course interface {
	Load(ctx context.Context) error
	Flush(ctx context.Context)

	Config() domain.CourseConfig
	UpdateConfig(cfg domain.CourseConfig) error
	ClassDays() []string
	CourseHours() float64

	Units() []domain.Unit
	AddUnit(unit domain.Unit) (domain.UnitDays, error)
	UpdateUnit(unit domain.Unit) (domain.UnitDays, error)
	RemoveUnit(id string) error
	UnitDays(id string) (domain.UnitDays, error)
	FilterUnits(query string) []domain.UnitDays

	Students() []domain.Student
	AddStudent(name string) (domain.Student, error)
	AddStudentsBulk(text string) ([]domain.Student, error)
	ImportRosterHTML(r io.Reader) ([]domain.Student, error)
	RemoveStudent(id string) error
	RemoveAllStudents() int

	Mark(studentID, date string) domain.Mark
	SetMark(studentID, date string, mark domain.Mark) error
	CycleMark(studentID, date string) (domain.Mark, error)
	MarkAllPresent(date string) error
	ClearDay(date string) error
	DayStats(date string) (domain.DayStats, error)

	SelectedDate() string
	SelectDate(date string) error
	NextDay() string
	PrevDay() string

	Summary() domain.Matrix
	Overview() Overview
	StudentReport(id string) (StudentReport, error)

	Snapshot() domain.Snapshot
	Restore(snapshot domain.Snapshot) error
}

// StudentReport is one student's summary together with the per-day marks
// over the whole calendar.
type StudentReport struct {
	Summary        domain.StudentSummary
	Units          []domain.UnitDays
	Days           []DayMark
	TotalJustified int
	Config         domain.CourseConfig
}

type DayMark struct {
	Date string
	Mark domain.Mark
}

// Overview is the summary matrix together with the calendar and config it
// was computed from. TotalJustified is keyed by student id.
type Overview struct {
	Config         domain.CourseConfig
	ClassDays      []string
	Matrix         domain.Matrix
	TotalJustified map[string]int
}
