// Package transition drives a single style property of a single element
// through on and off states, invoking a completion callback each time the
// property settles.
package transition

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stateforward/go-kenburns/clock"
	"github.com/stateforward/go-kenburns/kinds"
	"github.com/stateforward/go-kenburns/pkg/metrics"
	"github.com/stateforward/go-kenburns/pkg/telemetry"
	"github.com/stateforward/go-kenburns/style"
)

type State uint8

const (
	Off State = iota
	TurningOn
	On
	TurningOff
)

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case TurningOn:
		return "turning-on"
	case On:
		return "on"
	case TurningOff:
		return "turning-off"
	default:
		return "unknown"
	}
}

// Value produces the property value at the moment of a fire.
type Value func(machine *Machine) string

// Const returns a Value that always produces value.
func Const(value string) Value {
	return func(*Machine) string {
		return value
	}
}

type Config struct {
	Context  context.Context
	Property string
	On       Value
	Off      Value
	// Duration is the default timing for On and Off.
	Duration Timing
	// Curve is the easing function, ease-out when empty.
	Curve  string
	Vendor style.Vendor
	// State is the initial state.
	State      State
	OnComplete func(machine *Machine, event style.TransitionEvent)
	Registry   *Registry
	Clock      clock.Clock
	Logger     *slog.Logger
	Trace      telemetry.Trace
	Metrics    *metrics.Metrics
}

type Machine struct {
	ctx         context.Context
	id          string
	element     style.Element
	property    string
	vendor      style.Vendor
	state       State
	busy        bool
	timing      Timing
	start       time.Time
	end         time.Time
	curve       string
	last        string
	on          Value
	off         Value
	duration    Timing
	onComplete  func(machine *Machine, event style.TransitionEvent)
	unsubscribe func()
	registry    *Registry
	clock       clock.Clock
	logger      *slog.Logger
	trace       telemetry.Trace
	metrics     *metrics.Metrics
}

// New binds a machine to property on element. The caller keeps ownership of
// element and must not bind two machines to the same property of it.
func New(element style.Element, config Config) *Machine {
	machine := &Machine{
		ctx:        config.Context,
		id:         uuid.NewString(),
		element:    element,
		property:   config.Property,
		vendor:     config.Vendor,
		state:      config.State,
		curve:      config.Curve,
		on:         config.On,
		off:        config.Off,
		duration:   config.Duration,
		onComplete: config.OnComplete,
		registry:   config.Registry,
		clock:      config.Clock,
		logger:     config.Logger,
		trace:      config.Trace,
		metrics:    config.Metrics,
	}
	if machine.ctx == nil {
		machine.ctx = context.Background()
	}
	if machine.curve == "" {
		machine.curve = "ease-out"
	}
	if machine.clock == nil {
		machine.clock = clock.Make()
	}
	if machine.logger == nil {
		machine.logger = slog.Default()
	}
	machine.unsubscribe = element.OnTransitionEnd(machine.transitionEnd)
	machine.registry.Register(machine)
	return machine
}

type request struct {
	value  Value
	timing Timing
}

type Option func(*request)

// WithValue overrides the configured value for one fire.
func WithValue(value Value) Option {
	return func(r *request) {
		r.value = value
	}
}

// WithTiming overrides the configured duration for one fire.
func WithTiming(timing Timing) Option {
	return func(r *request) {
		r.timing = timing
	}
}

func (m *Machine) resolve(fallback Value, options []Option) (string, Timing) {
	r := request{value: fallback, timing: m.duration}
	for _, option := range options {
		option(&r)
	}
	if r.value == nil {
		return "", r.timing
	}
	return r.value(m), r.timing
}

func (m *Machine) On(options ...Option) {
	if m == nil {
		return
	}
	value, timing := m.resolve(m.on, options)
	m.fire(value, timing, TurningOn)
}

func (m *Machine) Off(options ...Option) {
	if m == nil {
		return
	}
	value, timing := m.resolve(m.off, options)
	m.fire(value, timing, TurningOff)
}

func (m *Machine) fire(value string, timing Timing, state State) {
	if m.trace != nil {
		defer m.trace(m.ctx, kinds.Fire, m.property,
			attribute.String("machine", m.id),
			attribute.String("value", value),
			attribute.String("timing", timing.String()),
			attribute.String("state", state.String()),
		)()
	}
	m.state = state
	value = m.vendor.Filter(value)
	if m.IsBusy() {
		m.aborted()
	}
	m.timing = timing
	m.busy = true
	m.start = m.clock.Now()
	m.end = m.start.Add(timing.Duration())
	m.metrics.Fired(m.property, timing.kind())

	if timing.Positive() {
		m.element.Set(m.vendor.TransitionProperty(), timing.declaration(m.vendor.CSSProperty(m.property), m.curve))
	} else {
		m.element.Set(m.vendor.TransitionProperty(), "")
	}

	// an unchanged value produces no notification from the element
	if m.isAlreadySet(value) {
		m.last = value
		if timing.Valid() {
			m.complete(m.synthetic())
		} else {
			m.busy = false
		}
		return
	}
	m.element.Set(m.vendor.Property(m.property), value)
	m.last = value
	switch {
	case timing == Immediate:
		m.complete(m.synthetic())
	case !timing.Valid():
		m.busy = false
	}
}

func (m *Machine) synthetic() style.TransitionEvent {
	return style.TransitionEvent{
		Target:    m.element,
		Property:  m.vendor.CSSProperty(m.property),
		Synthetic: true,
	}
}

func (m *Machine) transitionEnd(event style.TransitionEvent) {
	if style.Normalize(event.Property) != style.Normalize(m.property) {
		return
	}
	// nothing timed is in flight, so the event belongs to an aborted fire
	if !m.IsBusy() {
		return
	}
	m.complete(event)
}

func (m *Machine) complete(event style.TransitionEvent) {
	if m.trace != nil {
		end := m.trace(m.ctx, kinds.Settle, m.property, attribute.String("machine", m.id))
		defer func() {
			end(attribute.String("state", m.state.String()))
		}()
	}
	switch m.state {
	case TurningOn:
		m.state = On
	case TurningOff:
		m.state = Off
	}
	m.busy = false
	m.metrics.Settled(m.property, m.state.String())
	if m.onComplete != nil {
		m.onComplete(m, event)
	}
}

// aborted runs when a fire interrupts a timed transition. The interrupted
// transition's completion callback is never invoked.
func (m *Machine) aborted() {
	if m.trace != nil {
		defer m.trace(m.ctx, kinds.Abort, m.property, attribute.String("machine", m.id))()
	}
	m.metrics.Aborted(m.property)
	m.logger.DebugContext(m.ctx, "transition aborted",
		"machine", m.id,
		"property", m.property,
		"state", m.state.String(),
		"remaining", m.end.Sub(m.clock.Now()),
	)
}

func (m *Machine) isAlreadySet(value string) bool {
	return m.element.Get(m.vendor.Property(m.property)) == value
}

// IsBusy reports whether a timed transition is in flight.
func (m *Machine) IsBusy() bool {
	return m.busy && m.timing.Positive()
}

// Busy returns the raw busy flag, which is also set while an immediate fire
// runs its completion.
func (m *Machine) Busy() bool {
	return m.busy
}

func (m *Machine) Is(state State) bool {
	return m.state == state
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Timing() Timing {
	return m.timing
}

func (m *Machine) Start() time.Time {
	return m.start
}

func (m *Machine) End() time.Time {
	return m.end
}

// Value is the last value applied by the machine.
func (m *Machine) Value() string {
	return m.last
}

func (m *Machine) ID() string {
	return m.id
}

func (m *Machine) Property() string {
	return m.property
}

func (m *Machine) Element() style.Element {
	return m.element
}

// Destroy stops listening for notifications and leaves the registry. The
// machine must not be used afterwards.
func (m *Machine) Destroy() {
	if m == nil {
		return
	}
	if m.trace != nil {
		defer m.trace(m.ctx, kinds.Destroy, m.property, attribute.String("machine", m.id))()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.registry.Remove(m)
}

// Edge is one step of the machine lifecycle.
type Edge struct {
	Source  State
	Target  State
	Trigger string
}

// Lifecycle returns the edges a machine moves along.
func Lifecycle() []Edge {
	return []Edge{
		{Source: Off, Target: TurningOn, Trigger: "on"},
		{Source: TurningOn, Target: On, Trigger: "complete"},
		{Source: On, Target: TurningOff, Trigger: "off"},
		{Source: TurningOff, Target: Off, Trigger: "complete"},
	}
}
