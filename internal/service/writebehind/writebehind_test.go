package writebehind

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
)

type recorder struct {
	mu   sync.Mutex
	runs map[string][]int
}

func newRecorder() *recorder {
	return &recorder{runs: make(map[string][]int)}
}

func (r *recorder) op(key string, value int) Op {
	return func(context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.runs[key] = append(r.runs[key], value)
		return nil
	}
}

func (r *recorder) get(key string) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.runs[key]...)
}

func testConfig(delay time.Duration) config.WriteBehind {
	return config.WriteBehind{
		Delay:     delay,
		OpTimeout: time.Second,
		QueueSize: 16,
	}
}

func TestService_debounce(t *testing.T) {
	s := NewService(testConfig(50 * time.Millisecond))
	go s.Start()
	defer s.Stop()

	rec := newRecorder()
	for i := 1; i <= 5; i++ {
		s.Enqueue("course", rec.op("course", i))
	}
	s.Enqueue("other", rec.op("other", 7))

	assert.Eventually(t, func() bool {
		return len(rec.get("course")) == 1 && len(rec.get("other")) == 1
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, []int{5}, rec.get("course"))
	assert.Equal(t, []int{7}, rec.get("other"))
	assert.Equal(t, 0, s.Pending())
}

func TestService_Flush(t *testing.T) {
	s := NewService(testConfig(time.Hour))

	rec := newRecorder()
	s.Enqueue("a", rec.op("a", 1))
	s.Enqueue("b", rec.op("b", 2))
	assert.Equal(t, 2, s.Pending())

	s.Flush(context.Background())

	assert.Equal(t, []int{1}, rec.get("a"))
	assert.Equal(t, []int{2}, rec.get("b"))
	assert.Equal(t, 0, s.Pending())

	s.Flush(context.Background())
	assert.Equal(t, []int{1}, rec.get("a"))
}

func TestService_failedOpIsDropped(t *testing.T) {
	s := NewService(testConfig(time.Hour))

	calls := 0
	s.Enqueue("bad", func(context.Context) error {
		calls++
		return errors.New("db is down")
	})

	s.Flush(context.Background())
	s.Flush(context.Background())

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Pending())
}

func TestService_FlushCancelled(t *testing.T) {
	s := NewService(testConfig(time.Hour))

	rec := newRecorder()
	s.Enqueue("a", rec.op("a", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Flush(ctx)

	assert.Empty(t, rec.get("a"))
	assert.Equal(t, 0, s.Pending())
}

func TestService_StopWithoutStart(t *testing.T) {
	s := NewService(testConfig(time.Hour))

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Start()
		close(done)
	}()

	assert.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestService_StopKeepsExpiredOps(t *testing.T) {
	tests := []struct {
		name      string
		queueSize int
	}{
		{name: "unbuffered queue", queueSize: 0},
		{name: "buffered queue", queueSize: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(5 * time.Millisecond)
			cfg.QueueSize = tt.queueSize
			s := NewService(cfg)
			go s.Start()

			rec := newRecorder()
			s.Enqueue("a", rec.op("a", 1))
			time.Sleep(30 * time.Millisecond)

			s.Stop()
			s.Flush(context.Background())

			assert.Equal(t, []int{1}, rec.get("a"))
			assert.Equal(t, 0, s.Pending())
		})
	}
}
