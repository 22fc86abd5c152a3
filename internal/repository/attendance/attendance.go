package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/database"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
)

const foreignKeyViolation = "23503"

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

func (r *repo) Table(ctx context.Context) (domain.AttendanceTable, error) {
	query := `
		SELECT student_id, date, mark
		FROM attendance
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	table := make(domain.AttendanceTable)
	for rows.Next() {
		var (
			studentID string
			date      pgtype.Date
			mark      string
		)
		if err = rows.Scan(&studentID, &date, &mark); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		if date.Status != pgtype.Present {
			continue
		}
		table.Set(studentID, calendar.FormatDate(date.Time), domain.Mark(mark))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return table, nil
}

// SetMark upserts the mark. An unset mark deletes the row.
func (r *repo) SetMark(ctx context.Context, studentID, date string, mark domain.Mark) error {
	if mark == domain.MarkUnset {
		return r.ClearMarks(ctx, date, []string{studentID})
	}

	day, err := calendar.ParseDate(date)
	if err != nil {
		return fmt.Errorf("calendar.ParseDate: %w", ierrors.ErrInvalidDate)
	}

	query := `
		INSERT INTO attendance (
		    student_id,
		    date,
		    mark,
		    updated_at
		)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, date) DO UPDATE
		SET
		    mark = $3,
		    updated_at = $4
	`

	_, err = r.db.Exec(ctx, query,
		studentID,                                      // $1
		pgtype.Date{Time: day, Status: pgtype.Present}, // $2
		string(mark),                                   // $3
		time.Now(),                                     // $4
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("db.Exec: %w", ierrors.ErrStudentNotFound)
	}
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func (r *repo) ClearMarks(ctx context.Context, date string, studentIDs []string) error {
	if len(studentIDs) == 0 {
		return nil
	}

	day, err := calendar.ParseDate(date)
	if err != nil {
		return fmt.Errorf("calendar.ParseDate: %w", ierrors.ErrInvalidDate)
	}

	query := `
		DELETE FROM attendance
		WHERE date = $1 AND student_id = ANY($2::TEXT[])
	`

	_, err = r.db.Exec(ctx, query,
		pgtype.Date{Time: day, Status: pgtype.Present}, // $1
		studentIDs, // $2
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}
