// Package report renders printable HTML attendance documents.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service/export"
	"github.com/ilyadubrovsky/tracking-attendance/internal/summary"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"pct":   export.FormatPct,
		"hours": formatHours,
		"add":   func(a, b int) int { return a + b },
	}).ParseFS(templatesFS, "templates/*.html"),
)

type svc struct {
	courseSvc service.Course
}

func NewService(courseSvc service.Course) *svc {
	return &svc{
		courseSvc: courseSvc,
	}
}

type cell struct {
	UnitID    string
	UnitName  string
	Summary   domain.UnitSummary
	Threshold float64
	Status    domain.Status
	HasDays   bool
}

type row struct {
	Student        domain.Student
	Cells          []cell
	TotalJustified int
}

type column struct {
	ID    string
	Name  string
	Days  int
	Hours float64
}

type globalData struct {
	Config      domain.CourseConfig
	ClassDays   []string
	CourseHours float64
	Columns     []column
	Rows        []row
}

type studentData struct {
	Student        domain.Student
	Config         domain.CourseConfig
	Cells          []cell
	Days           []service.DayMark
	TotalJustified int
}

// Global renders every student against every unit, flagging cells below
// their threshold.
func (s *svc) Global(w io.Writer) error {
	overview := s.courseSvc.Overview()
	cfg := overview.Config
	classDays := overview.ClassDays
	matrix := overview.Matrix

	columns := make([]column, 0, len(matrix.Units))
	for _, unit := range matrix.Units {
		columns = append(columns, column{
			ID:    unit.Unit.ID,
			Name:  unit.Unit.Name,
			Days:  len(unit.Days),
			Hours: unit.Hours(cfg.HoursPerDay),
		})
	}

	rows := make([]row, 0, len(matrix.Students))
	for _, student := range matrix.Students {
		rows = append(rows, row{
			Student:        student.Student,
			Cells:          cells(matrix.Units, student, cfg),
			TotalJustified: overview.TotalJustified[student.Student.ID],
		})
	}

	data := globalData{
		Config:      cfg,
		ClassDays:   classDays,
		CourseHours: float64(len(classDays)) * cfg.HoursPerDay,
		Columns:     columns,
		Rows:        rows,
	}
	if err := templates.ExecuteTemplate(w, "global.html", data); err != nil {
		return fmt.Errorf("templates.ExecuteTemplate: %w", err)
	}
	return nil
}

// Student renders one student's unit breakdown and the per-day marks in
// calendar order.
func (s *svc) Student(w io.Writer, studentID string) error {
	report, err := s.courseSvc.StudentReport(studentID)
	if err != nil {
		return fmt.Errorf("courseSvc.StudentReport: %w", err)
	}

	data := studentData{
		Student:        report.Summary.Student,
		Config:         report.Config,
		Cells:          cells(report.Units, report.Summary, report.Config),
		Days:           report.Days,
		TotalJustified: report.TotalJustified,
	}
	if err = templates.ExecuteTemplate(w, "student.html", data); err != nil {
		return fmt.Errorf("templates.ExecuteTemplate: %w", err)
	}
	return nil
}

func cells(units []domain.UnitDays, student domain.StudentSummary, cfg domain.CourseConfig) []cell {
	result := make([]cell, 0, len(units))
	for _, unit := range units {
		rec := student.ByUnit[unit.Unit.ID]
		threshold := unit.Unit.Threshold(cfg.RequiredPct)
		result = append(result, cell{
			UnitID:    unit.Unit.ID,
			UnitName:  unit.Unit.Name,
			Summary:   rec,
			Threshold: threshold,
			Status:    summary.Classify(rec, threshold),
			HasDays:   rec.TotalDays > 0,
		})
	}
	return result
}

func formatHours(hours float64) string {
	if hours == float64(int64(hours)) {
		return fmt.Sprintf("%d", int64(hours))
	}
	return fmt.Sprintf("%.1f", hours)
}
