package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// captureStdout swaps the console writer for a buffer until the test ends.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = orig })
	return &buf
}

func TestSetup_FileOnly_NoStdout(t *testing.T) {
	console := captureStdout(t)

	var fileBuf bytes.Buffer
	m := NewSlogManager("test")
	m.Setup(&fileBuf, "info", nil)
	m.Logger().Info("hello file")

	assert.Contains(t, fileBuf.String(), "hello file")
	assert.Contains(t, fileBuf.String(), "Logging initialized")
	assert.Empty(t, console.String(), "nothing should be written to stdout when file is provided")
}

func TestSetup_NoFile_WritesToStdout(t *testing.T) {
	console := captureStdout(t)

	m := NewSlogManager("test")
	m.Setup(nil, "info", nil)
	m.Logger().Info("hello console")

	assert.Contains(t, console.String(), "hello console")
}

func TestSetup_ExtraWritersGetJSON(t *testing.T) {
	var fileBuf, gelfBuf bytes.Buffer
	m := NewSlogManager("test")
	m.Setup(&fileBuf, "info", nil, &gelfBuf, nil)
	m.Logger().Info("design saved", "id", "abc")

	lines := strings.Split(strings.TrimSpace(gelfBuf.String()), "\n")
	require.Len(t, lines, 2) // init message + ours

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "design saved", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
	assert.Contains(t, fileBuf.String(), "id=abc")
}

func TestSetup_ContextProvider(t *testing.T) {
	var buf bytes.Buffer
	stored := 2
	m := NewSlogManager("test")
	m.SetContextProvider(func() []slog.Attr {
		return []slog.Attr{slog.Int("designs", stored)}
	})
	m.Setup(&buf, "info", nil)

	stored = 5
	m.Logger().Info("tick")

	assert.Contains(t, buf.String(), "designs=5")
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager("test")
	m.Setup(&buf, "debug", nil)

	m.Logger().Debug("debug msg")
	m.Logger().Info("info msg")

	output := buf.String()
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager("test")
	m.Setup(&buf, "info", nil)

	m.Logger().Debug("should be filtered")
	m.Logger().Info("should appear")

	output := buf.String()
	assert.NotContains(t, output, "should be filtered")
	assert.Contains(t, output, "should appear")
}

func TestSetup_ReplacesLogger(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	m := NewSlogManager("test")

	m.Setup(&buf1, "info", nil)
	m.Logger().Info("first")

	m.Setup(&buf2, "info", nil)
	m.Logger().Info("second")

	assert.Contains(t, buf1.String(), "first")
	assert.NotContains(t, buf1.String(), "second", "old file should not receive new logs")
	assert.Contains(t, buf2.String(), "second")
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager("test")
	assert.Equal(t, slog.Default(), m.Logger())
}

func TestFlush_NilProvider(t *testing.T) {
	m := NewSlogManager("test")
	assert.NoError(t, m.Flush(context.Background()))
}

func TestFlush_WithProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	m := NewSlogManager("test")
	m.Setup(io.Discard, "info", provider)

	m.Logger().Info("otel integrated")
	assert.NoError(t, m.Flush(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(NewMultiHandler(h1, h2)).Info("fanned out")

	assert.Contains(t, buf1.String(), "fanned out")
	assert.Contains(t, buf2.String(), "fanned out")
}

func TestMultiHandler_FiltersNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(nil, slog.NewTextHandler(&buf, nil), nil)
	require.Len(t, multi.handlers, 1)

	slog.New(multi).Info("works")
	assert.Contains(t, buf.String(), "works")
}

func TestMultiHandler_Enabled(t *testing.T) {
	infoHandler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})

	infoOnly := NewMultiHandler(infoHandler)
	assert.False(t, infoOnly.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, infoOnly.Enabled(context.Background(), slog.LevelInfo))

	both := NewMultiHandler(infoHandler, debugHandler)
	assert.True(t, both.Enabled(context.Background(), slog.LevelDebug))

	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	slog.New(multi.WithAttrs([]slog.Attr{slog.String("component", "http")})).Info("with attrs")
	assert.Contains(t, buf.String(), "component=http")

	slog.New(multi.WithGroup("grp")).Info("grouped", "key", "val")
	assert.Contains(t, buf.String(), "grp.key=val")

	assert.Equal(t, multi, multi.WithGroup(""))
}

type errorHandler struct {
	slog.Handler
}

func (h *errorHandler) Handle(_ context.Context, _ slog.Record) error {
	return errors.New("handler error")
}

func (h *errorHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func TestMultiHandler_HandleError(t *testing.T) {
	var buf bytes.Buffer
	spy := slog.NewTextHandler(&buf, nil)

	slog.New(NewMultiHandler(&errorHandler{}, spy)).Info("should reach spy")

	assert.Contains(t, buf.String(), "should reach spy")
}

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewContextHandler(slog.NewTextHandler(&buf, nil), func() []slog.Attr {
		return []slog.Attr{slog.String("backend", "memory")}
	})

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("component", "storage")}))
	logger.Info("ready")

	out := buf.String()
	assert.Contains(t, out, "backend=memory")
	assert.Contains(t, out, "component=storage")
	assert.Equal(t, h, h.WithGroup(""))
}
