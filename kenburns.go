// Package kenburns drives a cross-fading image slideshow in which every
// visible slide runs its own pan, zoom or rotate effect.
//
// A Slideshow chains one opacity transition.Machine per slide. Each fade-in
// completion schedules the next slide after the animation dwell and snaps the
// previous slide out once the next one has faded in, so exactly one slide is
// animating apart from a short cross-fade overlap.
//
// Slideshows are not safe for concurrent use. All methods must be called
// from the goroutine that runs the scheduler's callbacks.
package kenburns

import (
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/stateforward/go-kenburns/kinds"
	"github.com/stateforward/go-kenburns/loop"
	"github.com/stateforward/go-kenburns/style"
	"github.com/stateforward/go-kenburns/transition"
)

// Markers applied to the presentation.
const (
	ContainerMarker = "slide-container"
	SlideMarker     = "slide"
	ActiveMarker    = "active"
	AnimateMarker   = "animate"
	CurrentMarker   = "current"
)

type slide struct {
	index     int
	source    string
	element   style.Element
	machine   *transition.Machine
	animating bool
}

type Slideshow struct {
	options
	scheduler loop.Scheduler
	wrapper   style.Element
	slides    []*slide
	cursor    int
	effect    int
	active    bool
	registry  *transition.Registry
	timers    map[uint64]loop.Timer
	nextTimer uint64
	destroyed bool
}

// New builds one slide per image inside container and starts the cycle.
// images and the effect catalog must not be empty.
func New(container style.Element, images []string, scheduler loop.Scheduler, opts ...Option) *Slideshow {
	s := &Slideshow{
		options:   defaults(),
		scheduler: scheduler,
		effect:    -1,
		registry:  transition.NewRegistry(),
		timers:    map[uint64]loop.Timer{},
	}
	for _, opt := range opts {
		opt(&s.options)
	}
	s.wrapper = container.Append(ContainerMarker)
	for i, source := range images {
		s.slides = append(s.slides, s.createSlide(i, source))
	}
	// effects run across the fade in, the dwell and the fade out
	animation := strconv.FormatInt((2*s.fadeDuration + s.animationDuration).Milliseconds(), 10) + "ms"
	for _, slide := range s.slides {
		slide.element.Set(s.vendor.Property("animation-duration"), animation)
	}
	s.start()
	return s
}

func (s *Slideshow) createSlide(index int, source string) *slide {
	element := s.wrapper.Append(SlideMarker)
	element.Set(s.vendor.Property("opacity"), "0")
	element.Set("background-image", "url("+source+")")
	slide := &slide{index: index, source: source, element: element}
	slide.machine = transition.New(element, transition.Config{
		Context:  s.ctx,
		Property: "opacity",
		Vendor:   s.vendor,
		Duration: transition.Timed(s.fadeDuration),
		Curve:    s.curve,
		On: func(*transition.Machine) string {
			return s.reveal(slide)
		},
		Off: transition.Const("0"),
		OnComplete: func(*transition.Machine, style.TransitionEvent) {
			s.settled(slide)
		},
		Registry: s.registry,
		Clock:    s.scheduler.Clock(),
		Logger:   s.logger,
		Trace:    s.trace,
		Metrics:  s.metrics,
	})
	return slide
}

// reveal produces the fade-in value, starting the slide's effect on the way.
func (s *Slideshow) reveal(slide *slide) string {
	effect := s.NextEffect()
	slide.element.AddMarker(effect, AnimateMarker)
	slide.animating = true
	for _, other := range s.slides {
		other.element.RemoveMarker(CurrentMarker)
	}
	s.slides[s.cursor].element.AddMarker(CurrentMarker)
	s.logger.DebugContext(s.ctx, "slide revealed", "slide", slide.index, "source", slide.source, "effect", effect)
	return "1"
}

func (s *Slideshow) settled(slide *slide) {
	switch slide.machine.State() {
	case transition.On:
		s.active = true
		s.wrapper.AddMarker(ActiveMarker)
		s.metrics.Playing(true)
		s.after(s.animationDuration, func() {
			// pausing clears the flag; a stale timer must not advance
			if !slide.animating {
				s.stale(slide)
				return
			}
			s.Next()
			s.after(s.fadeDuration, func() {
				slide.machine.Off(transition.WithTiming(transition.Immediate))
			})
		})
	case transition.Off:
		slide.animating = false
		slide.element.RemoveMarker(AnimateMarker)
		slide.element.RemoveMarker(s.effects...)
	}
}

func (s *Slideshow) stale(slide *slide) {
	if s.trace != nil {
		defer s.trace(s.ctx, kinds.Stale, "slideshow", attribute.Int("slide", slide.index))()
	}
	s.metrics.Stale()
	s.logger.DebugContext(s.ctx, "discarding stale timer", "slide", slide.index)
}

func (s *Slideshow) after(d time.Duration, fn func()) {
	s.nextTimer++
	id := s.nextTimer
	s.timers[id] = s.scheduler.After(d, func() {
		delete(s.timers, id)
		fn()
	})
}

func (s *Slideshow) start() {
	if s.trace != nil {
		defer s.trace(s.ctx, kinds.Start, "slideshow", attribute.Int("slides", len(s.slides)), attribute.Bool("paused", s.paused))()
	}
	s.cursor = 0
	if s.randomize {
		s.cursor = s.rand.IntN(len(s.slides))
	}
	s.logger.InfoContext(s.ctx, "slideshow started", "slides", len(s.slides), "cursor", s.cursor, "paused", s.paused)
	if s.paused {
		s.slides[s.cursor].element.Set(s.vendor.Property("opacity"), "1")
		return
	}
	// yield so the first change is observed as a transition
	s.scheduler.Defer(func() {
		if s.destroyed {
			return
		}
		s.slides[s.cursor].machine.On()
	})
}

// NextEffect returns the next effect from the catalog: sequentially, or
// uniformly at random when randomizing.
func (s *Slideshow) NextEffect() string {
	s.effect++
	if s.effect >= len(s.effects) {
		s.effect = 0
	}
	if s.randomize {
		s.effect = s.rand.IntN(len(s.effects))
	}
	return s.effects[s.effect]
}

// Next advances the cursor, wrapping at the end, and fades the new slide in.
func (s *Slideshow) Next() {
	if s.trace != nil {
		defer s.trace(s.ctx, kinds.Advance, "slideshow", attribute.Int("from", s.cursor))()
	}
	s.cursor = (s.cursor + 1) % len(s.slides)
	s.metrics.Advanced()
	s.logger.DebugContext(s.ctx, "advancing slide", "cursor", s.cursor)
	s.slides[s.cursor].machine.On()
}

// Pause stops the cycle after the current slide. Pending timers are left to
// fire and find nothing animating.
func (s *Slideshow) Pause() {
	if s.trace != nil {
		defer s.trace(s.ctx, kinds.Pause, "slideshow")()
	}
	s.active = false
	s.wrapper.RemoveMarker(ActiveMarker)
	for _, slide := range s.slides {
		if slide.animating {
			slide.animating = false
			slide.element.RemoveMarker(AnimateMarker)
		}
	}
	s.metrics.Playing(false)
	s.onPause()
}

// Play restarts the cycle from the next slide. It does nothing while a slide
// is animating.
func (s *Slideshow) Play() {
	for _, slide := range s.slides {
		if slide.animating {
			return
		}
	}
	if s.trace != nil {
		defer s.trace(s.ctx, kinds.Play, "slideshow", attribute.Int("cursor", s.cursor))()
	}
	s.slides[s.cursor].machine.Off(transition.WithTiming(transition.Immediate))
	s.Next()
	s.onPlay()
}

// Destroy stops pending timers, destroys every machine and removes the
// slides from the container.
func (s *Slideshow) Destroy() {
	if s.destroyed {
		return
	}
	if s.trace != nil {
		defer s.trace(s.ctx, kinds.Teardown, "slideshow")()
	}
	s.destroyed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	for _, slide := range s.slides {
		slide.machine.Destroy()
	}
	s.wrapper.Detach()
	s.active = false
	s.metrics.Playing(false)
}

func (s *Slideshow) Cursor() int {
	return s.cursor
}

func (s *Slideshow) Len() int {
	return len(s.slides)
}

// Active reports whether slides are auto-cycling.
func (s *Slideshow) Active() bool {
	return s.active
}

// Animating reports whether slide i is running its effect.
func (s *Slideshow) Animating(i int) bool {
	return s.slides[i].animating
}

func (s *Slideshow) Machine(i int) *transition.Machine {
	return s.slides[i].machine
}

func (s *Slideshow) Slide(i int) style.Element {
	return s.slides[i].element
}

func (s *Slideshow) Source(i int) string {
	return s.slides[i].source
}

func (s *Slideshow) Registry() *transition.Registry {
	return s.registry
}

// Pending returns the number of dwell timers not yet fired.
func (s *Slideshow) Pending() int {
	return len(s.timers)
}
