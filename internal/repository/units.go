package repository

import (
	"context"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type Units interface {
	Units(ctx context.Context) ([]domain.Unit, error)
	Upsert(ctx context.Context, units []domain.Unit) error
	Delete(ctx context.Context, id string) error
}
