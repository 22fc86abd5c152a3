package course_config

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

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	cfg := domain.DefaultCourseConfig()
	require.NoError(t, repo.Save(ctx, &cfg))

	cfg.RequiredPct = 80
	cfg.Holidays = []string{"2025-10-13"}
	require.NoError(t, repo.Save(ctx, &cfg))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cfg, *got)
}
