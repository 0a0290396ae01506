// Package metrics exposes Prometheus instrumentation for machines and
// slideshows. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	fired    *prometheus.CounterVec
	aborted  *prometheus.CounterVec
	settled  *prometheus.CounterVec
	advanced prometheus.Counter
	stale    prometheus.Counter
	playing  prometheus.Gauge
}

// New registers the collectors with registerer. A nil registerer leaves them
// unregistered, which is useful for scoped instances.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		fired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kenburns_transitions_fired_total",
			Help: "Total number of fired transitions by property and timing (timed, immediate, unspecified)",
		}, []string{"property", "timing"}),
		aborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kenburns_transitions_aborted_total",
			Help: "Total number of in-flight transitions aborted by a subsequent fire",
		}, []string{"property"}),
		settled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kenburns_transitions_settled_total",
			Help: "Total number of completion callbacks by property and resulting state",
		}, []string{"property", "state"}),
		advanced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kenburns_slides_advanced_total",
			Help: "Total number of slide advances",
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kenburns_stale_timers_total",
			Help: "Total number of dwell timers discarded because their slide stopped animating",
		}),
		playing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kenburns_slideshow_playing",
			Help: "1 while the slideshow is auto-cycling, 0 otherwise",
		}),
	}
	if registerer != nil {
		registerer.MustRegister(m.fired, m.aborted, m.settled, m.advanced, m.stale, m.playing)
	}
	return m
}

func (m *Metrics) Fired(property, timing string) {
	if m == nil {
		return
	}
	m.fired.WithLabelValues(property, timing).Inc()
}

func (m *Metrics) Aborted(property string) {
	if m == nil {
		return
	}
	m.aborted.WithLabelValues(property).Inc()
}

func (m *Metrics) Settled(property, state string) {
	if m == nil {
		return
	}
	m.settled.WithLabelValues(property, state).Inc()
}

func (m *Metrics) Advanced() {
	if m == nil {
		return
	}
	m.advanced.Inc()
}

func (m *Metrics) Stale() {
	if m == nil {
		return
	}
	m.stale.Inc()
}

func (m *Metrics) Playing(playing bool) {
	if m == nil {
		return
	}
	if playing {
		m.playing.Set(1)
	} else {
		m.playing.Set(0)
	}
}
