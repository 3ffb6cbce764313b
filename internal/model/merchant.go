package model

// Merchant is one deduplicated, classified business listing. It is built
// once per unique place ID per run and never mutated afterwards; the
// orchestrator owns the record until it is handed to a report writer.
type Merchant struct {
	// Name is the business display name.
	Name string `json:"name"`

	// Address is the short street address (the provider's vicinity field).
	Address string `json:"address"`

	// Latitude and Longitude are the listing's coordinates.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// BusinessTypes are the provider's type tags in the order returned.
	// Classification depends on this order: the first tag with a taxonomy
	// entry determines the MCC code.
	BusinessTypes []string `json:"business_types"`

	// MCCCode is the assigned 4-character merchant category code.
	MCCCode string `json:"mcc_code"`

	// MCCCategory is the human-readable category label for MCCCode.
	MCCCategory string `json:"mcc_category"`

	// PlaceID is the provider's stable external identifier, used as the
	// dedup key within a run.
	PlaceID string `json:"place_id"`

	// Rating is the average user rating, 0 when the provider omits it.
	Rating float64 `json:"rating"`

	// RatingCount is the total number of user ratings, 0 when omitted.
	RatingCount int `json:"rating_count"`

	// PriceLevel is the provider's 0-4 price indicator, 0 when omitted.
	PriceLevel int `json:"price_level"`

	// IsOpen reports whether the listing was open at scan time.
	// Defaults to false when the provider omits opening hours.
	IsOpen bool `json:"is_open"`

	// Phone is the formatted phone number from detail enrichment.
	// Empty when the listing has none.
	Phone string `json:"phone,omitempty"`

	// Website is the business website from detail enrichment.
	// Empty when the listing has none.
	Website string `json:"website,omitempty"`
}

// PrimaryType returns the listing's first type tag, or "" when it has none.
// Report summaries use it as the input to the coarse category policy.
func (m *Merchant) PrimaryType() string {
	if len(m.BusinessTypes) == 0 {
		return ""
	}
	return m.BusinessTypes[0]
}
