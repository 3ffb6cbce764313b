package config

import "time"

// Profile holds overrides loaded from the .merchantscan profile file.
// Everything in the profile is optional; zero values mean "use the flag or
// default value".
type Profile struct {
	// Radius overrides the nearby-search radius in meters.
	Radius int `yaml:"radius,omitempty"`

	// Format overrides the report format (excel, markdown, or json).
	Format string `yaml:"format,omitempty"`

	// OutputDir overrides the report output directory.
	OutputDir string `yaml:"outputDir,omitempty"`

	// PaginationDelay overrides the sleep between result pages.
	PaginationDelay time.Duration `yaml:"paginationDelay,omitempty"`

	// MaxRequests overrides the per-run API call ceiling.
	MaxRequests int `yaml:"maxRequests,omitempty"`

	// SearchGroups replaces the built-in sweep table when non-empty.
	// Groups are swept in file order, types in list order.
	SearchGroups []ProfileGroup `yaml:"searchGroups,omitempty"`
}

// ProfileGroup is one sweep group in the profile file: a category label and
// the place types to search for under it.
type ProfileGroup struct {
	// Category is the label the group's types are reported under.
	Category string `yaml:"category"`

	// Types are the Google place types to search for.
	Types []string `yaml:"types"`
}
