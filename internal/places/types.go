package places

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry wraps a listing's coordinates as the provider nests them.
type Geometry struct {
	Location LatLng `json:"location"`
}

// OpeningHours carries the provider's open-now snapshot. The field is a
// pointer on Place because the provider omits it entirely for listings
// without opening hours; absence means "not known", which downstream
// defaults to closed.
type OpeningHours struct {
	OpenNow bool `json:"open_now"`
}

// Place is one raw nearby-search result row, decoded as the provider sends
// it. Absent numeric fields decode to zero values, which downstream treats
// as defaults rather than errors.
type Place struct {
	// Name is the business display name.
	Name string `json:"name"`

	// Vicinity is the short street address.
	Vicinity string `json:"vicinity"`

	// Geometry holds the listing's coordinates.
	Geometry Geometry `json:"geometry"`

	// Types are the provider's business type tags, in provider order.
	Types []string `json:"types"`

	// PlaceID is the provider's stable external identifier.
	PlaceID string `json:"place_id"`

	// Rating is the average user rating.
	Rating float64 `json:"rating"`

	// UserRatingsTotal is the number of user ratings.
	UserRatingsTotal int `json:"user_ratings_total"`

	// PriceLevel is the 0-4 price indicator.
	PriceLevel int `json:"price_level"`

	// OpeningHours is the open-now snapshot, nil when not provided.
	OpeningHours *OpeningHours `json:"opening_hours"`
}

// OpenNow reports whether the listing is currently open, defaulting to
// false when the provider did not include opening hours.
func (p *Place) OpenNow() bool {
	return p.OpeningHours != nil && p.OpeningHours.OpenNow
}

// SearchPage is one page of nearby-search results. A non-empty
// NextPageToken means more results are available; the token needs a short
// propagation delay before it becomes valid.
type SearchPage struct {
	Results       []Place `json:"results"`
	NextPageToken string  `json:"next_page_token"`
}

// SearchRequest describes one nearby-search call.
type SearchRequest struct {
	// Lat and Lng are the search center.
	Lat float64
	Lng float64

	// Radius is the search radius in meters.
	Radius int

	// Type restricts results to one business type tag.
	Type string

	// PageToken, when non-empty, requests the next page of an earlier
	// search; the other fields are ignored by the provider in that case
	// but are sent anyway for symmetry.
	PageToken string
}

// Details is the enrichment payload for a single listing.
type Details struct {
	// FormattedPhoneNumber is the local-format phone number, empty when
	// the listing has none.
	FormattedPhoneNumber string `json:"formatted_phone_number"`

	// Website is the business website URL, empty when the listing has none.
	Website string `json:"website"`
}

// DetailFields are the enrichment fields the scraper requests.
var DetailFields = []string{"formatted_phone_number", "website"}
