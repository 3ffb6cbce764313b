package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name the first invalid field
// found. They are package-level sentinels so callers can branch with
// errors.Is() while still getting a human-readable message.
var (
	// ErrMissingAPIKey is returned when no Places API key is configured.
	// The key is read from the GOOGLE_PLACES_API_KEY environment variable
	// (a .env file in the working directory is honored).
	ErrMissingAPIKey = errors.New("missing API key: set GOOGLE_PLACES_API_KEY")

	// ErrNoLocation is returned when no search location is specified.
	ErrNoLocation = errors.New("no location specified: provide an address or place name")

	// ErrInvalidRadius is returned when the search radius is not positive.
	ErrInvalidRadius = errors.New("invalid radius: must be positive")

	// ErrInvalidMaxRequests is returned when the request ceiling is not
	// positive. A ceiling of zero would reject the first API call.
	ErrInvalidMaxRequests = errors.New("invalid max requests: must be positive")

	// ErrInvalidInterval is returned when the minimum request spacing is
	// negative. Use 0 to disable spacing enforcement.
	ErrInvalidInterval = errors.New("invalid request interval: must be non-negative")

	// ErrInvalidPaginationDelay is returned when the pagination delay is
	// negative.
	ErrInvalidPaginationDelay = errors.New("invalid pagination delay: must be non-negative")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidFormat is returned when the report format is not one of
	// excel, markdown, or json.
	ErrInvalidFormat = errors.New("invalid report format: must be excel, markdown, or json")
)
