package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewJSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production", "info")
	l.Debug("hidden")
	l.Info("blog-job: keyword selected", "keyword", "cheap flights")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "blog-job: keyword selected", rec["msg"])
	assert.Equal(t, "cheap flights", rec["keyword"])
}

func TestNewTextInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "development", "debug").Debug("trends: warmup", "geo", "US")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "geo=US")
}
