package transition

import (
	"strconv"
	"time"
)

// Timing is the duration of a fire. It has three cases: positive durations
// animate and complete on notification, Immediate applies at once and
// completes synchronously, and Unspecified applies at once without
// completing.
type Timing struct {
	duration time.Duration
	valid    bool
}

var (
	Unspecified = Timing{}
	Immediate   = Timing{valid: true}
)

// Timed returns a timing of d. Negative durations are treated as zero.
func Timed(d time.Duration) Timing {
	return Timing{duration: max(d, 0), valid: true}
}

func (t Timing) Duration() time.Duration {
	return t.duration
}

// Valid reports whether a duration was specified.
func (t Timing) Valid() bool {
	return t.valid
}

func (t Timing) Positive() bool {
	return t.valid && t.duration > 0
}

func (t Timing) String() string {
	switch {
	case !t.valid:
		return "unspecified"
	case t.duration == 0:
		return "immediate"
	default:
		return t.duration.String()
	}
}

// kind is the metrics label for t.
func (t Timing) kind() string {
	switch {
	case !t.valid:
		return "unspecified"
	case t.duration == 0:
		return "immediate"
	default:
		return "timed"
	}
}

// declaration renders a transition declaration for property.
func (t Timing) declaration(property, curve string) string {
	milliseconds := float64(t.duration) / float64(time.Millisecond)
	return property + " " + strconv.FormatFloat(milliseconds, 'f', -1, 64) + "ms " + curve
}
