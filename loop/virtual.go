package loop

import (
	"container/heap"
	"time"

	"github.com/stateforward/go-kenburns/clock"
	"github.com/stateforward/go-kenburns/queue"
)

// Virtual is a deterministic Scheduler for tests and simulations. Nothing
// runs until Drain or Advance is called, and everything runs on the caller's
// goroutine.
type Virtual struct {
	clock    clock.Clock
	deferred *queue.Queue[func()]
	timers   timers
	sequence uint64
}

func NewVirtual(start time.Time) *Virtual {
	return &Virtual{
		clock:    clock.Virtual(start),
		deferred: queue.New[func()](),
	}
}

func (v *Virtual) Now() time.Time {
	return v.clock.Now()
}

// Clock returns the virtual clock, for components that only read time.
func (v *Virtual) Clock() clock.Clock {
	return v.clock
}

func (v *Virtual) Defer(fn func()) {
	if fn == nil {
		return
	}
	v.deferred.Push(fn)
}

func (v *Virtual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	v.sequence++
	t := &virtualTimer{
		owner:    v,
		due:      v.clock.Now().Add(d),
		sequence: v.sequence,
		fn:       fn,
	}
	heap.Push(&v.timers, t)
	return t
}

// Pending returns the number of timers and deferred tasks not yet run.
func (v *Virtual) Pending() int {
	return len(v.timers) + v.deferred.Len()
}

// Drain runs deferred tasks, including ones they defer, until none remain.
func (v *Virtual) Drain() {
	for {
		task, ok := v.deferred.Pop()
		if !ok {
			return
		}
		task()
	}
}

// Advance moves time forward by d, firing due timers in order. Ties are
// broken by scheduling order.
func (v *Virtual) Advance(d time.Duration) {
	target := v.clock.Now().Add(d)
	v.Drain()
	for len(v.timers) > 0 && !v.timers[0].due.After(target) {
		t := heap.Pop(&v.timers).(*virtualTimer)
		v.clock.Advance(t.due.Sub(v.clock.Now()))
		t.index = -1
		t.fn()
		v.Drain()
	}
	v.clock.Advance(target.Sub(v.clock.Now()))
}

type virtualTimer struct {
	owner    *Virtual
	due      time.Time
	sequence uint64
	index    int
	fn       func()
}

func (t *virtualTimer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.owner.timers, t.index)
	t.index = -1
	return true
}

type timers []*virtualTimer

func (ts timers) Len() int { return len(ts) }

func (ts timers) Less(i, j int) bool {
	if ts[i].due.Equal(ts[j].due) {
		return ts[i].sequence < ts[j].sequence
	}
	return ts[i].due.Before(ts[j].due)
}

func (ts timers) Swap(i, j int) {
	ts[i], ts[j] = ts[j], ts[i]
	ts[i].index = i
	ts[j].index = j
}

func (ts *timers) Push(x any) {
	t := x.(*virtualTimer)
	t.index = len(*ts)
	*ts = append(*ts, t)
}

func (ts *timers) Pop() any {
	old := *ts
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*ts = old[:n-1]
	return t
}
