// Package log provides logging with automatic masking of the Places API
// credential, built on top of the standard slog package.
//
// The SecureHandler wraps any slog.Handler and sanitizes records before
// they are written:
//   - attributes whose key names a secret (api_key, authorization, ...)
//   - string values that look like a Google API key
//   - key= query parameters embedded in logged request URLs
//
// Even in verbose mode the credential never reaches the log output, so
// debug logs are safe to share.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
