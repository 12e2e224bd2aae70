package actor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// scheduler runs background tasks on behalf of an actor, at most max at a
// time (unbounded if max <= 0). The loop waits for it on shutdown.
type scheduler struct {
	ctx      context.Context
	log      *slog.Logger
	sem      chan struct{}
	wg       sync.WaitGroup
	inflight atomic.Int32

	actorID string
	metrics ActorMetrics
}

func newScheduler(ctx context.Context, max int, actorID string, log *slog.Logger, m ActorMetrics) *scheduler {
	s := &scheduler{
		ctx:     ctx,
		log:     log,
		actorID: actorID,
		metrics: m,
	}
	if max > 0 {
		s.sem = make(chan struct{}, max)
	}
	return s
}

// Schedule starts f in its own goroutine. It reports false if the actor is
// already shutting down.
func (s *scheduler) Schedule(f func(ctx context.Context)) bool {
	if s.ctx.Err() != nil {
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.sem != nil {
			select {
			case <-s.ctx.Done():
				return
			case s.sem <- struct{}{}:
			}
			defer func() { <-s.sem }()
		}

		s.metrics.SchedulerInflight(s.actorID, int(s.inflight.Add(1)))
		defer func() {
			s.metrics.SchedulerInflight(s.actorID, int(s.inflight.Add(-1)))
		}()

		s.run(f)
	}()
	return true
}

func (s *scheduler) run(f func(ctx context.Context)) {
	defer s.metrics.SchedulerTaskDuration().ObserveDuration()
	defer func() {
		if r := recover(); r != nil {
			s.metrics.SchedulerTaskCompleted(false)
			s.log.Error("scheduled task panicked", slog.Any("recovered", r))
		}
	}()

	f(s.ctx)
	s.metrics.SchedulerTaskCompleted(true)
}

// Wait blocks until every scheduled task has returned.
func (s *scheduler) Wait() { s.wg.Wait() }
