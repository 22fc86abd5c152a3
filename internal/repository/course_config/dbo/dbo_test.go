package dbo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

func TestCourseConfigToDomain(t *testing.T) {
	cfg := domain.DefaultCourseConfig()

	bytes, err := CourseConfigFromDomain(&cfg)
	require.NoError(t, err)

	got, err := CourseConfigToDomain(bytes)
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)

	_, err = CourseConfigToDomain(nil)
	assert.Error(t, err)

	_, err = CourseConfigToDomain([]byte(`{"start": 1}`))
	assert.Error(t, err)
}
