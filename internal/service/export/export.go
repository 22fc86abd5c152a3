// Package export renders attendance as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

// SummaryCSV writes one row per student with the percentage of every unit,
// the whole-course unit first.
func SummaryCSV(w io.Writer, matrix domain.Matrix) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(matrix.Units)+1)
	header = append(header, "Student")
	for _, unit := range matrix.Units {
		header = append(header, unit.Unit.Name+" %")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writer.Write(header): %w", err)
	}

	for _, student := range matrix.Students {
		row := make([]string, 0, len(header))
		row = append(row, student.Student.Name)
		for _, unit := range matrix.Units {
			rec, ok := student.ByUnit[unit.Unit.ID]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, FormatPct(rec.Pct))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writer.Write: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Flush: %w", err)
	}
	return nil
}

// DetailCSV writes one row per class day and student.
func DetailCSV(
	w io.Writer,
	classDays []string,
	students []domain.Student,
	table domain.AttendanceTable,
) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Date", "Student", "Mark"}); err != nil {
		return fmt.Errorf("writer.Write(header): %w", err)
	}
	for _, date := range classDays {
		for _, student := range students {
			row := []string{date, student.Name, string(table.Get(student.ID, date))}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writer.Write: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Flush: %w", err)
	}
	return nil
}

// FormatPct keeps one decimal.
func FormatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64)
}
