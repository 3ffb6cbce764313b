package places

import (
	"errors"
	"fmt"
)

// ErrNoGeocodeResult is returned by Geocode when the provider resolves the
// query to nothing. This is the one empty response the scraper treats as
// fatal: without coordinates there is nothing to sweep.
var ErrNoGeocodeResult = errors.New("no geocoding result for location")

// StatusError is returned when the provider answers with a non-OK API
// status. ZERO_RESULTS is not an error; it decodes to an empty result set.
type StatusError struct {
	// Status is the provider's status string (e.g. "OVER_QUERY_LIMIT").
	Status string

	// Message is the provider's optional human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places API status %s", e.Status)
	}
	return fmt.Sprintf("places API status %s: %s", e.Status, e.Message)
}
