// Package config provides configuration management for merchantscan.
//
// Configuration comes from three layers, lowest precedence first:
//   - compiled-in defaults (NewConfig)
//   - the optional .merchantscan YAML profile file (LoadProfile)
//   - CLI flags and the GOOGLE_PLACES_API_KEY environment variable
//
// The profile file is searched for in the current directory and then in the
// XDG config directory (~/.config/merchantscan on Linux). Validation happens
// once, after all layers are merged, and fails fast with a sentinel error
// before any outbound API call is made.
package config
