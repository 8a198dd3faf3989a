package loop

import (
	"context"
	"sync"
	"time"
)

// Scheduler produces ticks for a round.
type Scheduler interface {
	// Start calls tick repeatedly on its own goroutine until the handle is
	// stopped or ctx is cancelled. tick calls never overlap.
	Start(ctx context.Context, tick func()) Handle
}

// Handle controls one started tick source.
type Handle interface {
	// Stop cancels the source without waiting. Safe to call from inside tick
	// and more than once.
	Stop()
	// Done is closed once the source will never call tick again.
	Done() <-chan struct{}
}

// FixedRate ticks every Interval, sleeping until the next tick boundary.
// A slow tick delays the next one instead of queueing catch-up ticks.
type FixedRate struct {
	Interval time.Duration
}

var _ Scheduler = FixedRate{}

// Start implements Scheduler.
func (f FixedRate) Start(ctx context.Context, tick func()) Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &loopHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer cancel()

		timer := time.NewTimer(f.Interval)
		defer timer.Stop()

		for {
			frameStart := time.Now()

			if ctx.Err() != nil {
				return
			}
			tick()

			// Frame timing
			timer.Reset(max(f.Interval-time.Since(frameStart), 0))
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
	}()

	return h
}

type loopHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (h *loopHandle) Stop()                 { h.cancel() }
func (h *loopHandle) Done() <-chan struct{} { return h.done }

// Manual never ticks on its own. Hosts drive the round with Game.Step;
// the headless simulator and tests use it.
type Manual struct{}

var _ Scheduler = Manual{}

// Start implements Scheduler. tick is never called.
func (Manual) Start(context.Context, func()) Handle {
	return &manualHandle{done: make(chan struct{})}
}

type manualHandle struct {
	once sync.Once
	done chan struct{}
}

func (h *manualHandle) Stop()                 { h.once.Do(func() { close(h.done) }) }
func (h *manualHandle) Done() <-chan struct{} { return h.done }
