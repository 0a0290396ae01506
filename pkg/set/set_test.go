package set_test

import (
	"testing"

	"github.com/stateforward/go-kenburns/pkg/set"
)

func TestSet(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		s := set.New("slide", "animate", "slide")
		if s.Size() != 2 {
			t.Errorf("Expected size 2, got %d", s.Size())
		}
		if !s.Contains("animate") {
			t.Error("Expected set to contain 'animate'")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		s := set.New("zoom-in", "pan-w", "current")
		s.Remove("zoom-in", "pan-w", "missing")
		if s.Size() != 1 || !s.Contains("current") {
			t.Errorf("Expected only 'current', got %v", set.Sorted(s))
		}
	})

	t.Run("ContainsAny", func(t *testing.T) {
		s := set.New("slide")
		if s.ContainsAny("animate", "current") {
			t.Error("Expected no match")
		}
		if !s.ContainsAny("animate", "slide") {
			t.Error("Expected a match on 'slide'")
		}
	})

	t.Run("Items", func(t *testing.T) {
		s := set.New("a", "b", "c")
		count := 0
		for range s.Items() {
			count++
			break
		}
		if count != 1 {
			t.Errorf("Expected iteration to stop early, got %d", count)
		}
	})

	t.Run("Sorted", func(t *testing.T) {
		got := set.Sorted(set.New("slide", "animate", "current"))
		want := []string{"animate", "current", "slide"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Expected %v, got %v", want, got)
			}
		}
	})
}
