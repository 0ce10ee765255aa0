// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/deedparse/pkg/types"
)

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWriter(types.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("field matched", zap.String("field", "buyer"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "field matched", entry["msg"])
	assert.Equal(t, "buyer", entry["field"])
	assert.Contains(t, entry, "ts")
}

func TestNewWriterLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWriter(types.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWriterDefaults(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWriter(types.LogConfig{}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("started")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "started")
}

func TestNewWriterRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.LogConfig
	}{
		{"level", types.LogConfig{Level: "loud"}},
		{"format", types.LogConfig{Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWriter(tt.cfg, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}
