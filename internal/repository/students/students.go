package students

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/tracking-attendance/internal/database"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

func (r *repo) Students(ctx context.Context) ([]domain.Student, error) {
	query := `
		SELECT id, name
		FROM students
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	students := make([]domain.Student, 0)
	for rows.Next() {
		var student domain.Student
		if err = rows.Scan(&student.ID, &student.Name); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		students = append(students, student)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return students, nil
}

func (r *repo) Upsert(ctx context.Context, students []domain.Student) error {
	query := `
		INSERT INTO students (
		    id,
		    name,
		    created_at,
		    updated_at
		)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET
		    name = $2,
		    updated_at = $4
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, student := range students {
		_, err = tx.Exec(ctx, query,
			student.ID,   // $1
			student.Name, // $2
			now,          // $3
			now,          // $4
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

// Delete removes the student; marks go with it through the foreign key.
func (r *repo) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM students
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}
