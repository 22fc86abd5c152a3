package repository

import (
	"context"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type CourseConfig interface {
	// Get returns nil when no configuration has been saved yet.
	Get(ctx context.Context) (*domain.CourseConfig, error)
	Save(ctx context.Context, cfg *domain.CourseConfig) error
}
