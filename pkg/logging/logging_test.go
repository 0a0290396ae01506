package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stateforward/go-kenburns/pkg/logging"
)

func TestNew(t *testing.T) {
	var buffer bytes.Buffer
	logger := logging.New(slog.LevelInfo, &buffer)
	logger.Debug("hidden")
	logger.Info("shown", "error", errors.New("boom"))

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "err=boom")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel(""))
}
