package clock

import (
	"sync"
	"time"
)

// Clock is the wall-clock source for transition start and end times.
type Clock interface {
	Now() time.Time
	Advance(d time.Duration)
	Reset()
	Sleep(d time.Duration)
}

type Config struct {
	// Start pins a virtual clock to a fixed instant. A zero Start means real time.
	Start time.Time
}

var DefaultConfig = Config{}

type clock struct {
	mutex sync.RWMutex
	delta time.Duration
}

func (c *clock) Now() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return time.Now().Add(c.delta)
}

func (c *clock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.delta += d
}

func (c *clock) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.delta = 0
}

func (c *clock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// virtual only moves when advanced; Sleep advances instead of blocking.
type virtual struct {
	mutex sync.RWMutex
	start time.Time
	delta time.Duration
}

func (c *virtual) Now() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.start.Add(c.delta)
}

func (c *virtual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.delta += d
}

func (c *virtual) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.delta = 0
}

func (c *virtual) Sleep(d time.Duration) {
	c.Advance(d)
}

func Make(config ...Config) Clock {
	cfg := DefaultConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if !cfg.Start.IsZero() {
		return &virtual{start: cfg.Start}
	}
	return &clock{}
}

// Virtual returns a clock frozen at start.
func Virtual(start time.Time) Clock {
	return Make(Config{Start: start})
}
