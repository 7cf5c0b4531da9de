package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath/internal/config"
)

func TestLevelFallback(t *testing.T) {
	var cfg config.Config
	cfg.Logging.Level = "loud"
	l := newLogger(cfg, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	cfg.Logging.Level = "debug"
	l = newLogger(cfg, &bytes.Buffer{})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestJSONOutput(t *testing.T) {
	var cfg config.Config
	cfg.Logging.Level = "info"
	cfg.Logging.JSON = true
	var buf bytes.Buffer
	l := newLogger(cfg, &buf)
	l.WithField("rows", 6).Info("ready")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ready", entry["msg"])
	assert.Equal(t, float64(6), entry["rows"])
}
