package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

var week = []string{"2025-09-01", "2025-09-02", "2025-09-03", "2025-09-04", "2025-09-05"}

func weekTable() domain.AttendanceTable {
	table := domain.AttendanceTable{}
	table.Set("s1", "2025-09-01", domain.MarkPresent)
	table.Set("s1", "2025-09-02", domain.MarkPresent)
	table.Set("s1", "2025-09-03", domain.MarkPresent)
	table.Set("s1", "2025-09-04", domain.MarkAbsent)
	table.Set("s1", "2025-09-05", domain.MarkJustified)
	return table
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name           string
		days           []string
		studentID      string
		countJustified bool
		want           domain.UnitSummary
	}{
		{
			name:      "justified not counted",
			days:      week,
			studentID: "s1",
			want: domain.UnitSummary{
				Pct: 80, TotalDays: 5, Present: 3, MissedUnjustified: 1, MissedJustified: 1, PenalizedMissed: 1,
			},
		},
		{
			name:           "justified counted",
			days:           week,
			studentID:      "s1",
			countJustified: true,
			want: domain.UnitSummary{
				Pct: 60, TotalDays: 5, Present: 3, MissedUnjustified: 1, MissedJustified: 1, PenalizedMissed: 2,
			},
		},
		{
			name:      "restricted day list",
			days:      week[3:],
			studentID: "s1",
			want: domain.UnitSummary{
				Pct: 50, TotalDays: 2, MissedUnjustified: 1, MissedJustified: 1, PenalizedMissed: 1,
			},
		},
		{
			name:      "no marks",
			days:      week,
			studentID: "nobody",
			want:      domain.UnitSummary{Pct: 100, TotalDays: 5},
		},
		{
			name:      "empty day list",
			days:      []string{},
			studentID: "s1",
			want:      domain.UnitSummary{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.days, weekTable(), tt.studentID, tt.countJustified)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Summarize(tt.days, weekTable(), tt.studentID, tt.countJustified))
		})
	}
}

func TestSummarizeDoesNotMutate(t *testing.T) {
	table := weekTable()
	before := table.Clone()
	_ = Summarize(append(week, "2025-09-08"), table, "s1", true)
	assert.Equal(t, before, table)
}

func TestBelowThreshold(t *testing.T) {
	assert.False(t, BelowThreshold(75.0, 75))
	assert.True(t, BelowThreshold(74.99, 75))
	assert.False(t, BelowThreshold(80, 75))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.StatusNoDays, Classify(domain.UnitSummary{}, 75))
	assert.Equal(t, domain.StatusBelow, Classify(domain.UnitSummary{Pct: 60, TotalDays: 5}, 75))
	assert.Equal(t, domain.StatusMeets, Classify(domain.UnitSummary{Pct: 75, TotalDays: 4}, 75))
}

func TestBuild(t *testing.T) {
	override := 90.0
	cfg := domain.CourseConfig{
		Start: "2025-09-01", End: "2025-09-05", DaysOfWeek: []int{1, 2, 3, 4, 5}, RequiredPct: 75,
	}
	classDays := calendar.ClassDays(cfg)
	require.Equal(t, week, classDays)

	students := []domain.Student{{ID: "s1", Name: "Ana"}, {ID: "s2", Name: "Luis"}}
	units := []domain.Unit{
		{ID: "u1", Name: "First half", Start: "2025-09-01", End: "2025-09-03", RequiredPct: &override},
		{ID: "u2", Name: "No dates"},
	}

	matrix := Build(students, weekTable(), units, classDays, cfg)

	require.Len(t, matrix.Units, 3)
	assert.Equal(t, domain.TotalUnitID, matrix.Units[0].Unit.ID)
	assert.Equal(t, classDays, matrix.Units[0].Days)
	assert.Equal(t, 75.0, matrix.Units[0].Unit.Threshold(0))
	assert.Equal(t, "u1", matrix.Units[1].Unit.ID)
	assert.Equal(t, "u2", matrix.Units[2].Unit.ID)

	require.Len(t, matrix.Students, 2)
	ana, ok := matrix.Student("s1")
	require.True(t, ok)
	assert.Equal(t, 80.0, ana.ByUnit[domain.TotalUnitID].Pct)
	assert.Equal(t, 100.0, ana.ByUnit["u1"].Pct)
	assert.Equal(t, 0, ana.ByUnit["u2"].TotalDays)
	assert.Equal(t, 0.0, ana.ByUnit["u2"].Pct)

	luis, ok := matrix.Student("s2")
	require.True(t, ok)
	assert.Equal(t, 100.0, luis.ByUnit[domain.TotalUnitID].Pct)

	u1, ok := matrix.Unit("u1")
	require.True(t, ok)
	assert.Equal(t, 90.0, u1.Unit.Threshold(cfg.RequiredPct))

	assert.Equal(t, matrix, Build(students, weekTable(), units, classDays, cfg))
}

func TestTotalJustifiedAndDayStats(t *testing.T) {
	table := weekTable()
	table.Set("s2", "2025-09-05", domain.MarkPresent)
	students := []domain.Student{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}

	assert.Equal(t, 1, TotalJustified("s1", table, week))
	assert.Equal(t, 0, TotalJustified("s2", table, week))

	assert.Equal(t, domain.DayStats{
		Date: "2025-09-05", Present: 1, Justified: 1, Unset: 1, Total: 3,
	}, DayStats("2025-09-05", students, table))
}
