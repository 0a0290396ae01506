package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateforward/go-kenburns/config"
	"github.com/stateforward/go-kenburns/pkg/logging"
)

func TestSimulationVirtual(t *testing.T) {
	cfg := config.Default()
	cfg.Images = []string{"a.jpg", "b.jpg"}
	cfg.Randomize = false
	cfg.FadeDuration = 100 * time.Millisecond
	cfg.AnimationDuration = 200 * time.Millisecond

	var out, logs bytes.Buffer
	err := simulation{
		config:   cfg,
		duration: 500 * time.Millisecond,
		trace:    true,
		spans:    true,
		logger:   logging.New(logging.ParseLevel("debug"), &logs),
		out:      &out,
	}.run(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `opacity "" -> "0"`)
	assert.Contains(t, lines[2], `url(a.jpg)`)
	assert.Contains(t, lines[2], `opacity "0" -> "1"`)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[3]), "300ms"))
	assert.Contains(t, lines[3], `url(b.jpg)`)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[4]), "400ms"))
	assert.Contains(t, lines[4], `opacity "1" -> "0"`)
	assert.Contains(t, logs.String(), "kenburns_slides_advanced_total")
	assert.Contains(t, logs.String(), "msg=advance")
	assert.Contains(t, logs.String(), `span="fire opacity"`)
}

func TestLoadConfigImages(t *testing.T) {
	cfg, err := loadConfig("", []string{"x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.jpg"}, cfg.Images)

	_, err = loadConfig("", nil)
	assert.ErrorIs(t, err, config.ErrNoImages)

	_, err = loadConfig("missing.yaml", []string{"x.jpg"})
	assert.ErrorIs(t, err, config.ErrRead)
}

func TestDiagramCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"diagram", "--name", "opacity"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "@startuml opacity\n"))
	assert.Contains(t, out.String(), "off ----> turning_on : on\n")
}
