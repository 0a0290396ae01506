package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateforward/go-kenburns/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	m.Fired("opacity", "timed")
	m.Fired("opacity", "timed")
	m.Fired("opacity", "immediate")
	m.Aborted("opacity")
	m.Settled("opacity", "on")
	m.Advanced()
	m.Stale()
	m.Playing(true)

	count, err := testutil.GatherAndCount(registry, "kenburns_transitions_fired_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per timing label")

	count, err = testutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	m.Playing(false)
	count, err = testutil.GatherAndCount(registry, "kenburns_slideshow_playing")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Fired("opacity", "timed")
		m.Aborted("opacity")
		m.Settled("opacity", "off")
		m.Advanced()
		m.Stale()
		m.Playing(true)
	})
}

func TestUnregistered(t *testing.T) {
	m := metrics.New(nil)
	assert.NotPanics(t, func() { m.Advanced() })
}
