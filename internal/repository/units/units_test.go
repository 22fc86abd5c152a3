package units

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/tracking-attendance/internal/database/pg/pgtest"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

func TestRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(pgtest.New(t))

	pct := 80.0
	first := domain.Unit{ID: "u1", Code: "MF01", Name: "Databases", Start: "2025-09-16", End: "2025-10-31", RequiredPct: &pct}
	second := domain.Unit{ID: "u2", Name: "Tutoring"}

	require.NoError(t, repo.Upsert(ctx, []domain.Unit{first, second}))

	first.Name = "Databases II"
	first.RequiredPct = nil
	require.NoError(t, repo.Upsert(ctx, []domain.Unit{first}))

	got, err := repo.Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Unit{first, second}, got)

	require.NoError(t, repo.Delete(ctx, "u1"))

	got, err = repo.Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Unit{second}, got)
}
