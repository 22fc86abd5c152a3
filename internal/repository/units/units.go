package units

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/tracking-attendance/internal/database"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	"github.com/ilyadubrovsky/tracking-attendance/internal/repository/units/dbo"
)

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

func (r *repo) Units(ctx context.Context) ([]domain.Unit, error) {
	query := `
		SELECT
		    id,
		    code,
		    name,
		    start_date,
		    end_date,
		    required_pct
		FROM units
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	units := make([]domain.Unit, 0)
	for rows.Next() {
		dboUnit := new(dbo.Unit)
		err = rows.Scan(
			&dboUnit.ID,
			&dboUnit.Code,
			&dboUnit.Name,
			&dboUnit.Start,
			&dboUnit.End,
			&dboUnit.RequiredPct,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		units = append(units, dbo.ToDomain(dboUnit))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return units, nil
}

func (r *repo) Upsert(ctx context.Context, units []domain.Unit) error {
	query := `
		INSERT INTO units (
		    id,
		    code,
		    name,
		    start_date,
		    end_date,
		    required_pct,
		    created_at,
		    updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET
		    code = $2,
		    name = $3,
		    start_date = $4,
		    end_date = $5,
		    required_pct = $6,
		    updated_at = $8
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, unit := range units {
		dboUnit, err := dbo.FromDomain(unit)
		if err != nil {
			return fmt.Errorf("dbo.FromDomain: %w", err)
		}

		_, err = tx.Exec(ctx, query,
			dboUnit.ID,          // $1
			dboUnit.Code,        // $2
			dboUnit.Name,        // $3
			dboUnit.Start,       // $4
			dboUnit.End,         // $5
			dboUnit.RequiredPct, // $6
			now,                 // $7
			now,                 // $8
		)
		if err != nil {
			return fmt.Errorf("tx.Exec: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM units
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}
