package course_config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/ilyadubrovsky/tracking-attendance/internal/database"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/course_config/dbo"
)

const courseConfigKey = "course_config"

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

func (r *repo) Get(ctx context.Context) (*domain.CourseConfig, error) {
	query := `
		SELECT value
		FROM app_config
		WHERE key = $1
	`

	var value []byte
	err := r.db.QueryRow(ctx, query, courseConfigKey).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.QueryRow.Scan: %w", err)
	}

	cfg, err := dbo.CourseConfigToDomain(value)
	if err != nil {
		return nil, fmt.Errorf("dbo.CourseConfigToDomain: %w", err)
	}

	return cfg, nil
}

func (r *repo) Save(ctx context.Context, cfg *domain.CourseConfig) error {
	value, err := dbo.CourseConfigFromDomain(cfg)
	if err != nil {
		return fmt.Errorf("dbo.CourseConfigFromDomain: %w", err)
	}

	query := `
		INSERT INTO app_config (
		    key,
		    value,
		    updated_at
		)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET
		    value = $2,
		    updated_at = $3
	`

	_, err = r.db.Exec(ctx, query,
		courseConfigKey, // $1
		value,           // $2
		time.Now(),      // $3
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}
