package unitdays

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

var classDays = []string{
	"2025-09-01", "2025-09-02", "2025-09-03", "2025-09-04", "2025-09-05",
	"2025-09-08", "2025-09-09",
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		unit         domain.Unit
		wantDays     []string
		wantWarnings []string
	}{
		{
			name:         "single class day",
			unit:         domain.Unit{ID: "u", Start: "2025-09-03", End: "2025-09-03"},
			wantDays:     []string{"2025-09-03"},
			wantWarnings: []string{},
		},
		{
			name:         "range over a weekend",
			unit:         domain.Unit{ID: "u", Start: "2025-09-04", End: "2025-09-08"},
			wantDays:     []string{"2025-09-04", "2025-09-05", "2025-09-08"},
			wantWarnings: []string{},
		},
		{
			name:         "missing end",
			unit:         domain.Unit{ID: "u", Start: "2025-09-04"},
			wantDays:     []string{},
			wantWarnings: []string{WarningMissingDates},
		},
		{
			name:         "missing both",
			unit:         domain.Unit{ID: "u"},
			wantDays:     []string{},
			wantWarnings: []string{WarningMissingDates},
		},
		{
			name:         "end before start",
			unit:         domain.Unit{ID: "u", Start: "2025-09-05", End: "2025-09-01"},
			wantDays:     []string{},
			wantWarnings: []string{WarningEndBeforeStart, WarningNoClassDays},
		},
		{
			name:         "weekend only",
			unit:         domain.Unit{ID: "u", Start: "2025-09-06", End: "2025-09-07"},
			wantDays:     []string{},
			wantWarnings: []string{WarningNoClassDays},
		},
		{
			name:         "outside calendar",
			unit:         domain.Unit{ID: "u", Start: "2026-01-01", End: "2026-02-01"},
			wantDays:     []string{},
			wantWarnings: []string{WarningNoClassDays},
		},
		{
			name:         "invalid date",
			unit:         domain.Unit{ID: "u", Start: "2025-9-1", End: "2025-09-05"},
			wantDays:     []string{},
			wantWarnings: []string{WarningInvalidDate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.unit, classDays)
			assert.Equal(t, tt.wantDays, got.Days)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
			assert.Equal(t, len(tt.wantWarnings) == 0, got.OK())
		})
	}
}

func TestDaysIsSubsequence(t *testing.T) {
	unit := domain.Unit{ID: "u", Start: "2025-08-01", End: "2025-12-31"}
	assert.Equal(t, classDays, Days(unit, classDays))
}

func TestMapAll(t *testing.T) {
	units := []domain.Unit{
		{ID: "a", Name: "A", Start: "2025-09-01", End: "2025-09-02"},
		{ID: "b", Name: "B"},
	}

	mapped := MapAll(units, classDays)

	if assert.Len(t, mapped, 2) {
		assert.Equal(t, "a", mapped[0].Unit.ID)
		assert.Equal(t, []string{"2025-09-01", "2025-09-02"}, mapped[0].Days)
		assert.Empty(t, mapped[0].Warnings)
		assert.Equal(t, "b", mapped[1].Unit.ID)
		assert.Empty(t, mapped[1].Days)
		assert.Equal(t, []string{WarningMissingDates}, mapped[1].Warnings)
		assert.Equal(t, 10.0, mapped[0].Hours(5))
	}
}
