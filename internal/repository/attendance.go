package repository

import (
	"context"

	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
)

type Attendance interface {
	Table(ctx context.Context) (domain.AttendanceTable, error)
	SetMark(ctx context.Context, studentID, date string, mark domain.Mark) error
	ClearMarks(ctx context.Context, date string, studentIDs []string) error
}
