package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentCLI, Output: &buf})

	l.Info("hello")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "component=cli")
	assert.Contains(t, out, "msg=hello")
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, ComponentCLI, l.Component())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf}).WithComponent(ComponentWorker)

	l.Info("started")

	assert.Contains(t, buf.String(), "component=worker")
	assert.Equal(t, ComponentWorker, l.Component())
}
