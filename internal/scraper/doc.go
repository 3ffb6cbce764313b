// Package scraper orchestrates a merchant discovery run: geocode the
// target location, sweep every configured place type with a paginated
// nearby search, filter to consumer-facing listings, classify each into a
// merchant category code, and deduplicate by place ID.
//
// The scraper is strictly sequential. Every outbound call acquires the
// rate limiter first, so request spacing and the per-run ceiling hold
// regardless of which phase issues the call.
package scraper
