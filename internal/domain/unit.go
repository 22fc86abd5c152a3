package domain

import "strings"

// TotalUnitID identifies the synthetic whole-course unit. Generated and
// imported unit identifiers are never allowed to take this value.
const TotalUnitID = "__TOTAL__"

const (
	TotalUnitCode = "TOTAL"
	TotalUnitName = "Course total"
)

type Unit struct {
	ID          string   `json:"id" validate:"required"`
	Code        string   `json:"code"`
	Name        string   `json:"name" validate:"required"`
	Start       string   `json:"start" validate:"omitempty,date"`
	End         string   `json:"end" validate:"omitempty,date"`
	RequiredPct *float64 `json:"requiredPct,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// HasDates reports whether both range bounds are set.
func (u Unit) HasDates() bool {
	return u.Start != "" && u.End != ""
}

// Threshold returns the unit override or the course-wide fallback.
func (u Unit) Threshold(fallback float64) float64 {
	if u.RequiredPct != nil {
		return *u.RequiredPct
	}
	return fallback
}

func (u Unit) IsTotal() bool {
	return u.ID == TotalUnitID
}

// Matches is a case-insensitive substring match on name or code.
func (u Unit) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), query) ||
		strings.Contains(strings.ToLower(u.Code), query)
}

func (u Unit) Clone() Unit {
	clone := u
	if u.RequiredPct != nil {
		pct := *u.RequiredPct
		clone.RequiredPct = &pct
	}
	return clone
}

// UnitDays is a unit together with its computed class days.
type UnitDays struct {
	Unit     Unit
	Days     []string
	Warnings []string
}

func (u UnitDays) Hours(hoursPerDay float64) float64 {
	return float64(len(u.Days)) * hoursPerDay
}
