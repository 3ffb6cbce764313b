package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestSecureHandlerMasking tests that secret-bearing attributes are masked
// before reaching the underlying handler.
func TestSecureHandlerMasking(t *testing.T) {
	t.Parallel()

	newLogger := func() (*slog.Logger, *bytes.Buffer) {
		var buf bytes.Buffer
		handler := NewSecureHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		return slog.New(handler), &buf
	}

	t.Run("api_key attribute is masked", func(t *testing.T) {
		t.Parallel()
		logger, buf := newLogger()
		logger.Info("request", "api_key", "supersecret")
		out := buf.String()
		if strings.Contains(out, "supersecret") {
			t.Errorf("secret leaked into log output: %s", out)
		}
		if !strings.Contains(out, MaskValue) {
			t.Errorf("expected mask value in output: %s", out)
		}
	})

	t.Run("key attribute is masked", func(t *testing.T) {
		t.Parallel()
		logger, buf := newLogger()
		logger.Info("request", "key", "supersecret")
		if strings.Contains(buf.String(), "supersecret") {
			t.Errorf("secret leaked into log output: %s", buf.String())
		}
	})

	t.Run("key= query parameter in URL is masked", func(t *testing.T) {
		t.Parallel()
		logger, buf := newLogger()
		logger.Debug("calling provider",
			"url", "https://maps.googleapis.com/maps/api/geocode/json?address=NYC&key=AIzaSyExample123",
		)
		out := buf.String()
		if strings.Contains(out, "AIzaSyExample123") {
			t.Errorf("credential leaked into log output: %s", out)
		}
		if !strings.Contains(out, "address=NYC") {
			t.Errorf("non-secret query parameters should survive: %s", out)
		}
	})

	t.Run("value shaped like a Google API key is masked", func(t *testing.T) {
		t.Parallel()
		logger, buf := newLogger()
		secret := "AIza" + strings.Repeat("a", 35)
		logger.Info("loaded", "credential_source", secret)
		if strings.Contains(buf.String(), secret) {
			t.Errorf("credential leaked into log output: %s", buf.String())
		}
	})

	t.Run("ordinary attributes pass through", func(t *testing.T) {
		t.Parallel()
		logger, buf := newLogger()
		logger.Info("searching", "type", "restaurant", "radius", 5000)
		out := buf.String()
		if !strings.Contains(out, "restaurant") {
			t.Errorf("expected ordinary attribute in output: %s", out)
		}
	})

	t.Run("grouped secret attributes are masked", func(t *testing.T) {
		t.Parallel()
		logger, buf := newLogger()
		logger.Info("config", slog.Group("provider", slog.String("api_key", "supersecret")))
		if strings.Contains(buf.String(), "supersecret") {
			t.Errorf("grouped secret leaked: %s", buf.String())
		}
	})

	t.Run("WithAttrs sanitizes bound attributes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		handler := NewSecureHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		logger := slog.New(handler).With("token", "supersecret")
		logger.Info("hello")
		if strings.Contains(buf.String(), "supersecret") {
			t.Errorf("bound secret leaked: %s", buf.String())
		}
	})
}

// TestNewSecureLogger tests level selection.
func TestNewSecureLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose logger emits debug records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)
		logger.Debug("debugging")
		if !strings.Contains(buf.String(), "debugging") {
			t.Error("expected debug output in verbose mode")
		}
	})

	t.Run("quiet logger suppresses info records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, false)
		logger.Info("informational")
		if buf.Len() != 0 {
			t.Errorf("expected no output below warn level, got: %s", buf.String())
		}
	})
}
