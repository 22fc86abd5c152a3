package repository

import (
	"context"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type Students interface {
	Students(ctx context.Context) ([]domain.Student, error)
	Upsert(ctx context.Context, students []domain.Student) error
	Delete(ctx context.Context, id string) error
}
