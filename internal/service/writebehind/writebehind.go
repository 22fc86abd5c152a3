// Package writebehind debounces persistence operations. An operation is
// run once no newer operation has been enqueued under the same key for
// the configured delay.
package writebehind

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
)

// Op must be safe to run more than once.
type Op func(ctx context.Context) error

type svc struct {
	cache       *ttlcache.Cache[string, Op]
	unsubscribe func()
	jobChan     chan job
	runMu       sync.Mutex
	runs        sync.WaitGroup
	cfg         config.WriteBehind
	ctx         context.Context
	stopFunc    func()

	stateMu sync.Mutex
	started bool
	stopped bool
}

type job struct {
	key string
	op  Op
}

func NewService(cfg config.WriteBehind) *svc {
	s := &svc{
		cache: ttlcache.New[string, Op](
			ttlcache.WithTTL[string, Op](cfg.Delay),
		),
		jobChan: make(chan job, cfg.QueueSize),
		cfg:     cfg,
	}
	s.ctx, s.stopFunc = context.WithCancel(context.Background())

	s.unsubscribe = s.cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, Op]) {
		if reason != ttlcache.EvictionReasonExpired {
			return
		}
		j := job{key: item.Key(), op: item.Value()}
		select {
		case s.jobChan <- j:
		default:
			s.runs.Add(1)
			go func() {
				defer s.runs.Done()
				s.run(j)
			}()
		}
	})

	return s
}

// Enqueue replaces any pending operation under key and restarts its delay.
func (s *svc) Enqueue(key string, op Op) {
	s.cache.Set(key, op, ttlcache.DefaultTTL)
}

// Pending reports how many keys are waiting for their delay to pass.
func (s *svc) Pending() int {
	return s.cache.Len()
}

// Start blocks until Stop is called. It returns at once after Stop.
func (s *svc) Start() {
	s.stateMu.Lock()
	if s.started || s.stopped {
		s.stateMu.Unlock()
		return
	}
	s.started = true
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.worker(s.ctx)
	}()
	s.stateMu.Unlock()

	log.Info().Msg("start write-behind worker")
	s.cache.Start()
}

// Stop returns once no eviction callback or operation started by the
// queue is still running. Jobs left in the queue are run by Flush.
func (s *svc) Stop() {
	s.stateMu.Lock()
	if s.stopped {
		s.stateMu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.stateMu.Unlock()

	if started {
		s.cache.Stop()
	}
	s.unsubscribe()
	s.stopFunc()
	s.runs.Wait()
}

func (s *svc) worker(ctx context.Context) {
	for {
		select {
		case j := <-s.jobChan:
			s.run(j)
		case <-ctx.Done():
			return
		}
	}
}

// Flush runs every pending operation now, oldest first.
func (s *svc) Flush(ctx context.Context) {
	s.drain()

	items := make([]*ttlcache.Item[string, Op], 0, s.cache.Len())
	for _, item := range s.cache.Items() {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ExpiresAt().Before(items[j].ExpiresAt())
	})

	for _, item := range items {
		s.cache.Delete(item.Key())
		if ctx.Err() != nil {
			log.Warn().Str("key", item.Key()).Msg("writebehind.Flush: context done, operation dropped")
			continue
		}
		s.run(job{key: item.Key(), op: item.Value()})
	}

	s.drain()
}

// drain runs the jobs already handed over by the cache but not yet picked
// up by the worker.
func (s *svc) drain() {
	for {
		select {
		case j := <-s.jobChan:
			s.run(j)
		default:
			return
		}
	}
}

func (s *svc) run(j job) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.OpTimeout)
	defer cancel()

	start := time.Now()
	if err := j.op(ctx); err != nil {
		log.Error().Str("key", j.key).Msgf("writebehind.run: %v", err.Error())
		return
	}
	log.Debug().Str("key", j.key).Dur("took", time.Since(start)).Msg("write-behind operation done")
}
