package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys whose values are always masked.
// The scraper logs request URLs and configuration snapshots; the one secret
// flowing through it is the Places API credential.
var sensitiveKeys = map[string]bool{
	"api_key": true,
	"apikey":  true,
	"api-key": true,
	"key":     true,

	"authorization": true,
	"x-api-key":     true,
	"x-goog-api-key": true,

	"password":   true,
	"secret":     true,
	"token":      true,
	"credential": true,
}

// keyParamPattern matches a key= query parameter in a URL-shaped value.
// The Places web API carries the credential in the query string, so any
// logged URL must have it masked.
var keyParamPattern = regexp.MustCompile(`([?&]key=)[^&\s]+`)

// apiKeyValuePattern matches values that look like a Google API key.
var apiKeyValuePattern = regexp.MustCompile(`^AIza[0-9A-Za-z_-]{35}$`)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler to sanitize the API credential.
// It intercepts log records and masks attribute values whose key names
// indicate a secret, values that look like an API key, and key= query
// parameters embedded in URLs, before passing the record on. Using a
// handler wrapper keeps the standard slog API intact for callers and works
// with any underlying handler.
type SecureHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler
}

// NewSecureHandler creates a SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and delegates to the underlying
// handler.
func (h *SecureHandler) Handle(ctx context.Context, record slog.Record) error {
	sanitized := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)

	record.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new SecureHandler whose attributes are sanitized
// before being added to the underlying handler.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = h.sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitized)}
}

// WithGroup returns a new SecureHandler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// sanitizeAttr masks an attribute when its key or value indicates the API
// credential. Group attributes are sanitized recursively.
func (h *SecureHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		groupAttrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(groupAttrs))
		for i, groupAttr := range groupAttrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if apiKeyValuePattern.MatchString(strVal) {
			return slog.String(a.Key, MaskValue)
		}
		if masked := keyParamPattern.ReplaceAllString(strVal, "${1}"+MaskValue); masked != strVal {
			return slog.String(a.Key, masked)
		}
	}

	return a
}

// NewSecureLogger creates a slog.Logger that masks the API credential in
// all output. Output is the text format written to w; verbose selects
// LevelDebug, otherwise LevelWarn.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewSecureHandler(textHandler))
}
