package kenburns

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/stateforward/go-kenburns/pkg/metrics"
	"github.com/stateforward/go-kenburns/pkg/telemetry"
	"github.com/stateforward/go-kenburns/style"
)

const (
	DefaultFadeDuration      = 2000 * time.Millisecond
	DefaultAnimationDuration = 4000 * time.Millisecond
)

// DefaultEffects is the catalog of motion effects applied to slides.
var DefaultEffects = []string{
	"zoom-in",
	"zoom-out",
	"zoom-in-nw",
	"zoom-in-ne",
	"zoom-in-sw",
	"zoom-in-se",
	"zoom-out-nw",
	"zoom-out-ne",
	"zoom-out-sw",
	"zoom-out-se",
	"rotate-left",
	"rotate-right",
	"pan-w",
	"pan-e",
	"pan-n",
	"pan-s",
	"pan-nw",
	"pan-se",
	"pan-ne",
	"pan-sw",
}

type options struct {
	ctx               context.Context
	fadeDuration      time.Duration
	animationDuration time.Duration
	randomize         bool
	paused            bool
	onPlay            func()
	onPause           func()
	effects           []string
	rand              *rand.Rand
	vendor            style.Vendor
	curve             string
	logger            *slog.Logger
	trace             telemetry.Trace
	metrics           *metrics.Metrics
}

func defaults() options {
	return options{
		ctx:               context.Background(),
		fadeDuration:      DefaultFadeDuration,
		animationDuration: DefaultAnimationDuration,
		randomize:         true,
		onPlay:            func() {},
		onPause:           func() {},
		effects:           DefaultEffects,
		rand:              rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		vendor:            style.Unprefixed,
		logger:            slog.Default(),
	}
}

type Option func(*options)

func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithFadeDuration sets how long a slide takes to fade in.
func WithFadeDuration(d time.Duration) Option {
	return func(o *options) {
		o.fadeDuration = d
	}
}

// WithAnimationDuration sets how long a slide dwells after fading in before
// the next slide starts.
func WithAnimationDuration(d time.Duration) Option {
	return func(o *options) {
		o.animationDuration = d
	}
}

// WithRandomize picks the first slide and every effect at random.
func WithRandomize(randomize bool) Option {
	return func(o *options) {
		o.randomize = randomize
	}
}

// WithPaused reveals the first slide without starting the cycle.
func WithPaused(paused bool) Option {
	return func(o *options) {
		o.paused = paused
	}
}

func WithOnPlay(fn func()) Option {
	return func(o *options) {
		if fn != nil {
			o.onPlay = fn
		}
	}
}

func WithOnPause(fn func()) Option {
	return func(o *options) {
		if fn != nil {
			o.onPause = fn
		}
	}
}

// WithEffects replaces the effect catalog. The catalog must not be empty.
func WithEffects(effects ...string) Option {
	return func(o *options) {
		o.effects = effects
	}
}

func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

func WithVendor(vendor style.Vendor) Option {
	return func(o *options) {
		o.vendor = vendor
	}
}

func WithCurve(curve string) Option {
	return func(o *options) {
		o.curve = curve
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithTrace(trace telemetry.Trace) Option {
	return func(o *options) {
		o.trace = trace
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
