package unitdays

import (
	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

// Advisory warnings. None of them blocks editing a unit.
const (
	WarningMissingDates   = "missing start/end dates"
	WarningInvalidDate    = "start/end is not a valid YYYY-MM-DD date"
	WarningEndBeforeStart = "end date is before start date"
	WarningNoClassDays    = "range has no class days (check holidays and weekends)"
)

type Validation struct {
	Days     []string
	Warnings []string
}

func (v Validation) OK() bool {
	return len(v.Warnings) == 0
}

// Validate intersects the unit range with classDays. The returned days are
// always an order-preserving subsequence of classDays.
func Validate(unit domain.Unit, classDays []string) Validation {
	days := make([]string, 0)

	if !unit.HasDates() {
		return Validation{Days: days, Warnings: []string{WarningMissingDates}}
	}

	start, err := calendar.ParseDate(unit.Start)
	if err != nil {
		return Validation{Days: days, Warnings: []string{WarningInvalidDate}}
	}
	end, err := calendar.ParseDate(unit.End)
	if err != nil {
		return Validation{Days: days, Warnings: []string{WarningInvalidDate}}
	}

	warnings := make([]string, 0)
	if end.Before(start) {
		warnings = append(warnings, WarningEndBeforeStart)
	}

	from, to := calendar.FormatDate(start), calendar.FormatDate(end)
	for _, day := range classDays {
		if day >= from && day <= to {
			days = append(days, day)
		}
	}

	if len(days) == 0 {
		warnings = append(warnings, WarningNoClassDays)
	}

	return Validation{Days: days, Warnings: warnings}
}

// Days is Validate without the warnings.
func Days(unit domain.Unit, classDays []string) []string {
	return Validate(unit, classDays).Days
}

func MapAll(units []domain.Unit, classDays []string) []domain.UnitDays {
	mapped := make([]domain.UnitDays, 0, len(units))
	for _, unit := range units {
		v := Validate(unit, classDays)
		mapped = append(mapped, domain.UnitDays{
			Unit:     unit.Clone(),
			Days:     v.Days,
			Warnings: v.Warnings,
		})
	}
	return mapped
}
