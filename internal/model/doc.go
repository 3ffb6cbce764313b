// Package model defines the data structures shared across merchantscan:
// the Merchant output record and the per-run ScanReport that carries the
// deduplicated merchant list to the report writers.
package model
