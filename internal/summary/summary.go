package summary

import (
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	"github.com/ilyadubrovsky/tracking-attendance/internal/unitdays"
)

// Summarize counts the student's marks over days. Days without a mark are
// neither present nor missed.
func Summarize(
	days []string,
	table domain.AttendanceTable,
	studentID string,
	countJustified bool,
) domain.UnitSummary {
	var present, absent, justified int
	for _, day := range days {
		switch table.Get(studentID, day) {
		case domain.MarkPresent:
			present++
		case domain.MarkAbsent:
			absent++
		case domain.MarkJustified:
			justified++
		}
	}

	penalized := absent
	if countJustified {
		penalized += justified
	}

	total := len(days)
	var pct float64
	if total > 0 {
		pct = float64(total-penalized) * 100 / float64(total)
	}

	return domain.UnitSummary{
		Pct:               pct,
		TotalDays:         total,
		Present:           present,
		MissedUnjustified: absent,
		MissedJustified:   justified,
		PenalizedMissed:   penalized,
	}
}

// BelowThreshold is strict: a percentage equal to the threshold passes.
func BelowThreshold(pct, threshold float64) bool {
	return pct < threshold
}

// Classify is BelowThreshold for display, with empty ranges reported apart.
func Classify(rec domain.UnitSummary, threshold float64) domain.Status {
	if rec.TotalDays == 0 {
		return domain.StatusNoDays
	}
	if BelowThreshold(rec.Pct, threshold) {
		return domain.StatusBelow
	}
	return domain.StatusMeets
}

func TotalUnit(cfg domain.CourseConfig, classDays []string) domain.UnitDays {
	pct := cfg.RequiredPct
	return domain.UnitDays{
		Unit: domain.Unit{
			ID:          domain.TotalUnitID,
			Code:        domain.TotalUnitCode,
			Name:        domain.TotalUnitName,
			Start:       cfg.Start,
			End:         cfg.End,
			RequiredPct: &pct,
		},
		Days: classDays,
	}
}

// Build computes the summary of every student over the whole course and
// every unit. The whole-course unit comes first.
func Build(
	students []domain.Student,
	table domain.AttendanceTable,
	units []domain.Unit,
	classDays []string,
	cfg domain.CourseConfig,
) domain.Matrix {
	allUnits := make([]domain.UnitDays, 0, len(units)+1)
	allUnits = append(allUnits, TotalUnit(cfg, classDays))
	allUnits = append(allUnits, unitdays.MapAll(units, classDays)...)

	summaries := make([]domain.StudentSummary, 0, len(students))
	for _, student := range students {
		byUnit := make(map[string]domain.UnitSummary, len(allUnits))
		for _, u := range allUnits {
			byUnit[u.Unit.ID] = Summarize(u.Days, table, student.ID, cfg.CountJustifiedAgainstLimit)
		}
		summaries = append(summaries, domain.StudentSummary{
			Student: student,
			ByUnit:  byUnit,
		})
	}

	return domain.Matrix{
		Units:    allUnits,
		Students: summaries,
	}
}

// TotalJustified counts justified absences over days.
func TotalJustified(studentID string, table domain.AttendanceTable, days []string) int {
	var justified int
	for _, day := range days {
		if table.Get(studentID, day) == domain.MarkJustified {
			justified++
		}
	}
	return justified
}

func DayStats(date string, students []domain.Student, table domain.AttendanceTable) domain.DayStats {
	stats := domain.DayStats{Date: date, Total: len(students)}
	for _, student := range students {
		switch table.Get(student.ID, date) {
		case domain.MarkPresent:
			stats.Present++
		case domain.MarkAbsent:
			stats.Absent++
		case domain.MarkJustified:
			stats.Justified++
		default:
			stats.Unset++
		}
	}
	return stats
}
