// Package places implements the HTTP client for the Google Places web API
// surface merchantscan needs: forward geocoding, paginated nearby search,
// and per-listing detail enrichment.
//
// The client is deliberately thin: it encodes requests, decodes responses,
// and converts non-OK API statuses into errors. Rate limiting, pagination
// delays, and retry policy all live with the caller. ZERO_RESULTS is a
// valid empty answer everywhere except geocoding, where an empty result is
// ErrNoGeocodeResult because the scraper cannot proceed without
// coordinates.
package places
