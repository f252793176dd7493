package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, tt := range []struct{ json, debug bool }{{false, false}, {true, false}, {false, true}, {true, true}} {
		log, err := New(tt.json, tt.debug)
		require.NoError(t, err)
		assert.Equal(t, tt.debug, log.Core().Enabled(zap.DebugLevel))
	}
}

func TestBuild_JSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	log, err := build(true, false, []string{path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("analysis complete", zap.Int("groups", 7))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "analysis complete", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(7), entry["groups"])
}
