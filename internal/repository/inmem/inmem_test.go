package inmem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository"
)

var (
	_ repository.CourseConfig = (*courseConfigRepo)(nil)
	_ repository.Units        = (*unitsRepo)(nil)
	_ repository.Students     = (*studentsRepo)(nil)
	_ repository.Attendance   = (*attendanceRepo)(nil)
)

func TestCourseConfig(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().CourseConfig()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	cfg := domain.DefaultCourseConfig()
	require.NoError(t, repo.Save(ctx, &cfg))

	first := cfg.Holidays[0]
	cfg.Holidays[0] = "2030-01-01"
	cfg.Holidays = append(cfg.Holidays, "2030-01-02")
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got.Holidays[0])
	assert.NotContains(t, got.Holidays, "2030-01-01")
	assert.NotContains(t, got.Holidays, "2030-01-02")
}

func TestUnits(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Units()

	require.NoError(t, repo.Upsert(ctx, []domain.Unit{
		{ID: "u1", Name: "First"},
		{ID: "u2", Name: "Second"},
	}))
	require.NoError(t, repo.Upsert(ctx, []domain.Unit{{ID: "u1", Name: "Renamed"}}))

	units, err := repo.Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Unit{{ID: "u1", Name: "Renamed"}, {ID: "u2", Name: "Second"}}, units)

	require.NoError(t, repo.Delete(ctx, "u1"))
	require.NoError(t, repo.Delete(ctx, "missing"))

	units, err = repo.Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Unit{{ID: "u2", Name: "Second"}}, units)
}

func TestAttendance(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	students := store.Students()
	attendance := store.Attendance()

	err := attendance.SetMark(ctx, "s1", "2025-09-01", domain.MarkPresent)
	assert.True(t, errors.Is(err, ierrors.ErrStudentNotFound), "err = %v", err)

	err = attendance.SetMark(ctx, "s1", "01/09/2025", domain.MarkPresent)
	assert.True(t, errors.Is(err, ierrors.ErrInvalidDate), "err = %v", err)

	require.NoError(t, students.Upsert(ctx, []domain.Student{{ID: "s1", Name: "Ana"}, {ID: "s2", Name: "Ben"}}))
	require.NoError(t, attendance.SetMark(ctx, "s1", "2025-09-01", domain.MarkPresent))
	require.NoError(t, attendance.SetMark(ctx, "s2", "2025-09-01", domain.MarkAbsent))
	require.NoError(t, attendance.SetMark(ctx, "s2", "2025-09-02", domain.MarkJustified))

	table, err := attendance.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MarkAbsent, table.Get("s2", "2025-09-01"))

	require.NoError(t, attendance.ClearMarks(ctx, "2025-09-01", []string{"s1", "s2"}))
	table, err = attendance.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MarkUnset, table.Get("s1", "2025-09-01"))
	assert.Equal(t, domain.MarkJustified, table.Get("s2", "2025-09-02"))

	require.NoError(t, students.Delete(ctx, "s2"))
	table, err = attendance.Table(ctx)
	require.NoError(t, err)
	assert.Empty(t, table)
}
