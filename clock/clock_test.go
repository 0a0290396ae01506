package clock_test

import (
	"testing"
	"time"

	"github.com/stateforward/go-kenburns/clock"
)

func TestVirtual(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.Virtual(start)
	if !c.Now().Equal(start) {
		t.Fatalf("expected %v, got %v", start, c.Now())
	}
	c.Advance(150 * time.Millisecond)
	if got := c.Now().Sub(start); got != 150*time.Millisecond {
		t.Fatalf("expected 150ms, got %v", got)
	}
	c.Sleep(50 * time.Millisecond)
	if got := c.Now().Sub(start); got != 200*time.Millisecond {
		t.Fatalf("expected sleep to advance to 200ms, got %v", got)
	}
	c.Advance(-time.Second)
	if got := c.Now().Sub(start); got != 200*time.Millisecond {
		t.Fatalf("negative advance moved the clock to %v", got)
	}
	c.Reset()
	if !c.Now().Equal(start) {
		t.Fatalf("reset did not return to start, got %v", c.Now())
	}
}

func TestReal(t *testing.T) {
	c := clock.Make()
	before := time.Now()
	c.Advance(time.Hour)
	if c.Now().Sub(before) < time.Hour {
		t.Fatal("advance should shift real time forward")
	}
	c.Reset()
	if c.Now().Sub(before) >= time.Hour {
		t.Fatal("reset should drop the delta")
	}
}
