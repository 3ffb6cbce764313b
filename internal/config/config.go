package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The rate-limit constants mirror the Places API free-tier guidance: at most
// 50 requests per second and 1000 requests per day.
const (
	// DefaultRadius is the nearby-search radius in meters.
	DefaultRadius = 5000

	// MaxRequestsPerDay is the hard ceiling on outbound API calls per run.
	// Once the ceiling is reached the run fails closed; there is no retry.
	MaxRequestsPerDay = 1000

	// MaxRequestsPerSecond bounds the steady-state request rate.
	MaxRequestsPerSecond = 50

	// DefaultMinRequestInterval is the minimum spacing between consecutive
	// outbound API calls, derived from MaxRequestsPerSecond.
	DefaultMinRequestInterval = time.Second / MaxRequestsPerSecond

	// DefaultPaginationDelay is the fixed sleep before requesting the next
	// page of a nearby search. The Places API needs a short propagation
	// window before a page token becomes valid, and the delay is long enough
	// to satisfy the minimum request spacing on its own.
	DefaultPaginationDelay = 2 * time.Second

	// DefaultTimeout is the HTTP timeout for each individual API request.
	DefaultTimeout = 30 * time.Second

	// DefaultOutputDir is the directory report artifacts are written to.
	DefaultOutputDir = "output"

	// AppName is the application name used for XDG directory paths.
	AppName = "merchantscan"

	// EnvAPIKey is the environment variable holding the Places API key.
	EnvAPIKey = "GOOGLE_PLACES_API_KEY"
)

// Report output formats accepted by Config.Format.
const (
	FormatExcel    = "excel"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config holds all configuration options for a scrape run.
// It is populated from CLI flags, the environment, and an optional profile
// file, then passed through the application by dependency injection rather
// than global state. A single flat struct keeps the option surface easy to
// validate in one place.
type Config struct {
	// APIKey is the Places API credential. Required; the run fails before
	// any outbound call when it is absent.
	APIKey string

	// Location is the search location as a free-form address string
	// (e.g. "New York, NY").
	Location string

	// Radius is the nearby-search radius in meters.
	Radius int

	// OutputDir is the directory report artifacts are written to.
	// Created on demand.
	OutputDir string

	// Format selects the report artifact format: excel, markdown, or json.
	Format string

	// MaxRequests is the ceiling on outbound API calls for this run.
	MaxRequests int

	// MinRequestInterval is the minimum spacing between outbound API calls.
	MinRequestInterval time.Duration

	// PaginationDelay is the fixed sleep between successive pages of the
	// same nearby search. Not subject to MinRequestInterval enforcement.
	PaginationDelay time.Duration

	// Timeout is the HTTP timeout for each individual API request.
	Timeout time.Duration

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is the path to the profile file. If empty, the tool
	// searches for .merchantscan in the current directory and then in the
	// XDG config directory.
	ConfigFilePath string

	// Profile holds overrides loaded from the profile file.
	Profile *Profile
}

// NewConfig creates a Config with default values. The API key is read from
// the environment; callers may override it afterwards.
func NewConfig() *Config {
	return &Config{
		APIKey:             os.Getenv(EnvAPIKey),
		Radius:             DefaultRadius,
		OutputDir:          DefaultOutputDir,
		Format:             FormatExcel,
		MaxRequests:        MaxRequestsPerDay,
		MinRequestInterval: DefaultMinRequestInterval,
		PaginationDelay:    DefaultPaginationDelay,
		Timeout:            DefaultTimeout,
	}
}

// XDGConfigDir returns the XDG config directory for merchantscan.
// On Linux: ~/.config/merchantscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for merchantscan.
// On Linux: ~/.local/share/merchantscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid, returning a specific error
// describing the first problem found. It is called once after flag parsing
// and profile merging, before any outbound call is made.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	if c.Location == "" {
		return ErrNoLocation
	}

	if c.Radius <= 0 {
		return ErrInvalidRadius
	}

	if c.MaxRequests <= 0 {
		return ErrInvalidMaxRequests
	}

	if c.MinRequestInterval < 0 {
		return ErrInvalidInterval
	}

	if c.PaginationDelay < 0 {
		return ErrInvalidPaginationDelay
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	switch c.Format {
	case FormatExcel, FormatMarkdown, FormatJSON:
	default:
		return ErrInvalidFormat
	}

	return nil
}

// ApplyProfile merges profile-file overrides into the configuration.
// Only fields the profile actually sets are applied; flag-level values win
// when the profile leaves a field at its zero value.
func (c *Config) ApplyProfile(p *Profile) {
	if p == nil {
		return
	}
	c.Profile = p

	if p.Radius > 0 {
		c.Radius = p.Radius
	}
	if p.Format != "" {
		c.Format = p.Format
	}
	if p.OutputDir != "" {
		c.OutputDir = p.OutputDir
	}
	if p.PaginationDelay > 0 {
		c.PaginationDelay = p.PaginationDelay
	}
	if p.MaxRequests > 0 {
		c.MaxRequests = p.MaxRequests
	}
}
