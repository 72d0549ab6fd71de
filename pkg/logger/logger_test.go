package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("CreateTicket: code=%s", "0705-001")
	log.Warn("CreateTicket: retry attempt=%d", 2)

	out := buf.String()
	assert.NotContains(t, out, "0705-001")
	assert.Contains(t, out, "retry attempt=2")
	assert.Contains(t, out, "level=WARN")
}

func TestLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)
	log.Info("Starting SMC-TurnosService on port %d", 8080)
	log.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "port 8080")
}
