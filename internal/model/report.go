package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/merchantscan/merchantscan/internal/mcc"
)

// ScanReport is the result of one scrape run for a single location/radius
// pair. Merchants appear in discovery order: sweep table order, then page
// order, then within-page order.
type ScanReport struct {
	// RunID uniquely identifies this run, for log correlation and report
	// headers.
	RunID string `json:"run_id"`

	// Location is the free-form location string the run was invoked with.
	Location string `json:"location"`

	// Latitude and Longitude are the geocoded center of the search.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Radius is the nearby-search radius in meters.
	Radius int `json:"radius"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// RequestCount is the number of outbound API calls the run made.
	RequestCount int `json:"request_count"`

	// Merchants is the deduplicated merchant list in discovery order.
	Merchants []Merchant `json:"merchants"`
}

// NewScanReport creates a ScanReport for the given location and radius with
// a fresh run ID and start timestamp.
func NewScanReport(location string, radius int) *ScanReport {
	return &ScanReport{
		RunID:     uuid.NewString(),
		Location:  location,
		Radius:    radius,
		StartedAt: time.Now(),
		Merchants: make([]Merchant, 0),
	}
}

// AddMerchant appends a merchant to the report, preserving discovery order.
func (r *ScanReport) AddMerchant(m Merchant) {
	r.Merchants = append(r.Merchants, m)
}

// MerchantCount returns the number of merchants in the report.
func (r *ScanReport) MerchantCount() int {
	return len(r.Merchants)
}

// CategoryCounts returns the number of merchants per MCC category label,
// including the fallback label for unclassified merchants.
func (r *ScanReport) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, m := range r.Merchants {
		counts[m.MCCCategory]++
	}
	return counts
}

// CoarseCounts returns the number of merchants per coarse summary category,
// applying the coarse policy to each merchant's primary type tag. This is
// intentionally a different, broader grouping than CategoryCounts.
func (r *ScanReport) CoarseCounts() map[string]int {
	counts := make(map[string]int)
	for i := range r.Merchants {
		counts[mcc.CoarseCategory(r.Merchants[i].PrimaryType())]++
	}
	return counts
}
