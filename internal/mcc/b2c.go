package mcc

// SearchGroup is one row of the B2C sweep table: a category label and the
// place types searched for under it. The grouping exists for documentation
// and maintenance; at runtime only the flattened union matters for the B2C
// membership test, while the sweep iterates groups and types in declaration
// order so that results are discovered deterministically.
type SearchGroup struct {
	// Category is the taxonomy category the group's types belong to.
	Category Category

	// Types are the Google place types to search for, in sweep order.
	Types []string
}

// SearchGroups is the curated table of consumer-facing (B2C) place types the
// scraper sweeps. It is intentionally a separate table from the taxonomy:
// the taxonomy classifies whatever the provider returns, while this table
// decides what to ask the provider for. Types that primarily serve other
// businesses (wholesalers, agencies, government offices) are excluded.
var SearchGroups = []SearchGroup{
	{CategoryRetail, []string{
		"store",
		"clothing_store",
		"electronics_store",
		"book_store",
		"jewelry_store",
		"shoe_store",
		"convenience_store",
		"department_store",
		"furniture_store",
		"hardware_store",
		"home_goods_store",
		"liquor_store",
		"pet_store",
		"shopping_mall",
		"supermarket",
		"florist",
	}},
	{CategoryFood, []string{
		"restaurant",
		"cafe",
		"bakery",
		"bar",
		"meal_delivery",
		"meal_takeaway",
		"food",
		"grocery_or_supermarket",
	}},
	{CategoryServices, []string{
		"hair_care",
		"beauty_salon",
		"spa",
		"laundry",
		"dry_cleaning",
		"car_wash",
		"car_repair",
		"pharmacy",
		"dentist",
		"doctor",
		"veterinary_care",
		"optician",
	}},
	{CategoryEntertainment, []string{
		"movie_theater",
		"amusement_park",
		"aquarium",
		"art_gallery",
		"bowling_alley",
		"casino",
		"museum",
		"night_club",
		"gym",
		"stadium",
		"zoo",
	}},
	{CategoryTravel, []string{
		"lodging",
		"travel_agency",
		"tourist_attraction",
		"car_rental",
		"gas_station",
	}},
	{CategoryFinancial, []string{
		"bank",
		"atm",
		"insurance_agency",
		"currency_exchange",
		"pawn_shop",
	}},
	{CategoryReligious, []string{
		"church",
		"mosque",
		"synagogue",
		"temple",
	}},
	{CategoryArts, []string{
		"art_school",
		"art_supply_store",
		"craft_store",
		"fabric_store",
		"photography_studio",
		"musical_instrument_store",
	}},
}

// b2cTypes is the flattened union of SearchGroups, built once at init.
var b2cTypes = buildB2CTypes()

func buildB2CTypes() map[string]bool {
	m := make(map[string]bool)
	for _, g := range SearchGroups {
		for _, t := range g.Types {
			m[t] = true
		}
	}
	return m
}

// IsB2C reports whether a listing with the given place type tags is
// consumer-facing, i.e. whether at least one tag appears in the B2C sweep
// table. An empty tag list is not B2C.
func IsB2C(placeTypes []string) bool {
	for _, t := range placeTypes {
		if b2cTypes[t] {
			return true
		}
	}
	return false
}
