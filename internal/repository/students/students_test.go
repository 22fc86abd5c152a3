package students

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

	require.NoError(t, repo.Upsert(ctx, []domain.Student{
		{ID: "s1", Name: "Ana"},
		{ID: "s2", Name: "Bruno"},
	}))
	require.NoError(t, repo.Upsert(ctx, []domain.Student{{ID: "s1", Name: "Ana María"}}))

	got, err := repo.Students(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Student{
		{ID: "s1", Name: "Ana María"},
		{ID: "s2", Name: "Bruno"},
	}, got)

	require.NoError(t, repo.Delete(ctx, "s1"))
	require.NoError(t, repo.Delete(ctx, "missing"))

	got, err = repo.Students(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Student{{ID: "s2", Name: "Bruno"}}, got)
}
