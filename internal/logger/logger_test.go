package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Writer: &buf,
	})

	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "\"level\":\"INFO\"")
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{"production uses json", "production", true},
		{"development uses pretty", "development", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{
				Level:       slog.LevelInfo,
				Environment: tt.environment,
				Writer:      &buf,
			})

			logger.Info("test")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"test"`)
			} else {
				assert.Contains(t, buf.String(), "test")
				assert.Contains(t, buf.String(), colorBold)
			}
		})
	}
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
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(handler)
	logger.Info("test message", "key1", "value1", "key2", 42)

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=42")
	assert.Contains(t, output, "INF")
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(handler.WithAttrs([]slog.Attr{
		slog.String("service", "readup"),
	}))
	logger.Info("test message")

	assert.Contains(t, buf.String(), "service=readup")
}

func TestPrettyHandler_LevelFormatting(t *testing.T) {
	tests := []struct {
		level      slog.Level
		wantString string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

			slog.New(handler).Log(context.Background(), tt.level, "test")

			assert.Contains(t, buf.String(), tt.wantString)
		})
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.WithError(errors.New("boom")).Info("something happened")

	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "error")
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.WithField("user_id", "user-123").Info("user action")

	assert.Contains(t, buf.String(), "user_id")
	assert.Contains(t, buf.String(), "user-123")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: "json", Writer: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}
