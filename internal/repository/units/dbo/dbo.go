package dbo

import (
	"fmt"

	"github.com/jackc/pgtype"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type Unit struct {
	ID          string
	Code        string
	Name        string
	Start       pgtype.Date
	End         pgtype.Date
	RequiredPct pgtype.Float8
}

func FromDomain(unit domain.Unit) (*Unit, error) {
	start, err := dateFromString(unit.Start)
	if err != nil {
		return nil, fmt.Errorf("dateFromString(start): %w", err)
	}
	end, err := dateFromString(unit.End)
	if err != nil {
		return nil, fmt.Errorf("dateFromString(end): %w", err)
	}

	requiredPct := pgtype.Float8{Status: pgtype.Null}
	if unit.RequiredPct != nil {
		requiredPct = pgtype.Float8{Float: *unit.RequiredPct, Status: pgtype.Present}
	}

	return &Unit{
		ID:          unit.ID,
		Code:        unit.Code,
		Name:        unit.Name,
		Start:       start,
		End:         end,
		RequiredPct: requiredPct,
	}, nil
}

func ToDomain(unit *Unit) domain.Unit {
	result := domain.Unit{
		ID:    unit.ID,
		Code:  unit.Code,
		Name:  unit.Name,
		Start: DateToString(unit.Start),
		End:   DateToString(unit.End),
	}
	if unit.RequiredPct.Status == pgtype.Present {
		pct := unit.RequiredPct.Float
		result.RequiredPct = &pct
	}

	return result
}

func dateFromString(s string) (pgtype.Date, error) {
	if s == "" {
		return pgtype.Date{Status: pgtype.Null}, nil
	}

	t, err := calendar.ParseDate(s)
	if err != nil {
		return pgtype.Date{}, fmt.Errorf("calendar.ParseDate: %w", err)
	}

	return pgtype.Date{Time: t, Status: pgtype.Present}, nil
}

// DateToString maps a NULL date to the empty string.
func DateToString(date pgtype.Date) string {
	if date.Status != pgtype.Present {
		return ""
	}
	return calendar.FormatDate(date.Time)
}
