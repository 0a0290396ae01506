// Package loop provides the cooperative schedulers that drive machines and
// slideshows. Every callback runs to completion before the next one starts.
package loop

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/atomic"

	"github.com/stateforward/go-kenburns/clock"
	"github.com/stateforward/go-kenburns/queue"
)

// Timer is a single-shot timer handle.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the timer
	// was still pending.
	Stop() bool
}

// Scheduler is the only suspension mechanism available to callbacks.
type Scheduler interface {
	Now() time.Time
	Clock() clock.Clock
	// Defer yields once, running fn after the current callback returns.
	Defer(fn func())
	// After runs fn once d has elapsed.
	After(d time.Duration, fn func()) Timer
}

// Loop is a real-time Scheduler. A single goroutine executes tasks inside
// Run; Defer and After may be called from any goroutine.
type Loop struct {
	clock   clock.Clock
	tasks   *queue.Queue[func()]
	wake    chan struct{}
	running atomic.Bool
	logger  *slog.Logger
}

func New(maybeClock ...clock.Clock) *Loop {
	c := clock.Make()
	if len(maybeClock) > 0 && maybeClock[0] != nil {
		c = maybeClock[0]
	}
	return &Loop{
		clock:  c,
		tasks:  queue.New[func()](),
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
	}
}

func (l *Loop) WithLogger(logger *slog.Logger) *Loop {
	if logger != nil {
		l.logger = logger
	}
	return l
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

func (l *Loop) Clock() clock.Clock {
	return l.clock
}

func (l *Loop) Defer(fn func()) {
	if fn == nil {
		return
	}
	l.tasks.Push(fn)
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

type timer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *timer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}

func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &timer{}
	t.timer = time.AfterFunc(d, func() {
		l.Defer(func() {
			// the timer may have been stopped after it was queued
			if t.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

// Running reports whether Run is executing.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Run executes tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		l.logger.Error("loop is already running")
		return ErrRunning
	}
	defer l.running.Store(false)
	for {
		for {
			task, ok := l.tasks.Pop()
			if !ok {
				break
			}
			task()
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
