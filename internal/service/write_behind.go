package service

import (
	"context"

	"github.com/ilyadubrovsky/tracking-attendance/internal/service/writebehind"
)

type WriteBehind interface {
	Enqueue(key string, op writebehind.Op)
	Flush(ctx context.Context)
}
