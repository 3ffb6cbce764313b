package mcc

import (
	"errors"
	"fmt"
)

// Category is one of the eight classification categories used by the
// fine-grained taxonomy. The set is closed: every taxonomy entry carries
// exactly one of the constants below.
type Category string

// Taxonomy categories.
const (
	CategoryRetail        Category = "Retail"
	CategoryFood          Category = "Food & Beverage"
	CategoryServices      Category = "Services"
	CategoryEntertainment Category = "Entertainment"
	CategoryTravel        Category = "Travel"
	CategoryFinancial     Category = "Financial"
	CategoryReligious     Category = "Religious"
	CategoryArts          Category = "Arts & Crafts"
)

// Categories returns all taxonomy categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryRetail,
		CategoryFood,
		CategoryServices,
		CategoryEntertainment,
		CategoryTravel,
		CategoryFinancial,
		CategoryReligious,
		CategoryArts,
	}
}

// Fallback classification applied when none of a listing's place types has a
// taxonomy entry. The code deliberately reuses the literal "5399" (the same
// code the taxonomy assigns to the generic "store" type) but the category
// label is not one of the eight Category constants, and the fallback is not
// itself a taxonomy entry.
const (
	FallbackCode     = "5399"
	FallbackCategory = "Miscellaneous General Merchandise"
)

// ErrUnknownType is returned by Lookup and Info when a place type has no
// taxonomy entry. Callers that classify multi-tagged listings should treat
// this as "try the next tag", not as a failure; see Classify.
var ErrUnknownType = errors.New("unknown business type")

// Entry is one row of the taxonomy: a Google place type with its MCC code
// and category. Code is always exactly four characters.
type Entry struct {
	// PlaceType is the Google Places business type tag (e.g. "restaurant").
	PlaceType string

	// Code is the 4-character MCC code assigned to the place type.
	Code string

	// Category is the classification category for the place type.
	Category Category
}

// Info describes a single taxonomy entry in full. The description and
// examples are synthesized from the place type name; there is no separate
// descriptive data source.
type Info struct {
	// Code is the 4-character MCC code.
	Code string

	// Category is the human-readable category label.
	Category string

	// Description is a short synthesized description of the business type.
	Description string

	// Examples lists place types covered by this entry.
	Examples []string

	// Notes carries free-form annotations. Currently always empty.
	Notes string

	// MCCCategory is the typed category, mirroring Category.
	MCCCategory Category

	// PlaceTypes lists the Google place types mapped to this entry.
	PlaceTypes []string
}

// entries is the static taxonomy table. Order matters only in that All()
// documents map contents as originating from this insertion order; callers
// must not depend on iteration order.
var entries = []Entry{
	// Retail
	{"store", "5399", CategoryRetail},
	{"clothing_store", "5651", CategoryRetail},
	{"electronics_store", "5732", CategoryRetail},
	{"book_store", "5942", CategoryRetail},
	{"jewelry_store", "5944", CategoryRetail},
	{"shoe_store", "5661", CategoryRetail},
	{"bicycle_store", "5940", CategoryRetail},
	{"convenience_store", "5411", CategoryRetail},
	{"department_store", "5311", CategoryRetail},
	{"furniture_store", "5712", CategoryRetail},
	{"hardware_store", "5251", CategoryRetail},
	{"home_goods_store", "5719", CategoryRetail},
	{"liquor_store", "5921", CategoryRetail},
	{"pet_store", "5995", CategoryRetail},
	{"shopping_mall", "5300", CategoryRetail},
	{"supermarket", "5411", CategoryRetail},
	{"florist", "5992", CategoryRetail},
	{"gift_shop", "5947", CategoryRetail},
	{"toy_store", "5945", CategoryRetail},
	{"sporting_goods_store", "5941", CategoryRetail},
	{"cosmetics_store", "5977", CategoryRetail},
	{"perfumery", "5977", CategoryRetail},
	{"stationery_store", "5943", CategoryRetail},
	{"computer_store", "5734", CategoryRetail},
	{"mobile_phone_shop", "4812", CategoryRetail},
	{"camera_store", "5946", CategoryRetail},
	{"music_store", "5733", CategoryRetail},
	{"video_store", "7841", CategoryRetail},
	{"boutique", "5651", CategoryRetail},

	// Food & Beverage
	{"restaurant", "5812", CategoryFood},
	{"cafe", "5814", CategoryFood},
	{"bakery", "5462", CategoryFood},
	{"bar", "5813", CategoryFood},
	{"meal_delivery", "5812", CategoryFood},
	{"meal_takeaway", "5812", CategoryFood},
	{"food", "5499", CategoryFood},
	{"grocery_or_supermarket", "5411", CategoryFood},
	{"ice_cream_shop", "5451", CategoryFood},
	{"coffee_shop", "5814", CategoryFood},
	{"dessert_shop", "5462", CategoryFood},
	{"food_court", "5812", CategoryFood},
	{"fast_food_restaurant", "5814", CategoryFood},
	{"pizza_restaurant", "5812", CategoryFood},
	{"sushi_restaurant", "5812", CategoryFood},
	{"steak_house", "5812", CategoryFood},
	{"seafood_restaurant", "5812", CategoryFood},
	{"vegetarian_restaurant", "5812", CategoryFood},
	{"vegan_restaurant", "5812", CategoryFood},
	{"buffet_restaurant", "5812", CategoryFood},

	// Services
	{"hair_care", "7230", CategoryServices},
	{"beauty_salon", "7230", CategoryServices},
	{"spa", "7298", CategoryServices},
	{"laundry", "7211", CategoryServices},
	{"dry_cleaning", "7216", CategoryServices},
	{"car_wash", "7542", CategoryServices},
	{"car_repair", "7538", CategoryServices},
	{"pharmacy", "5912", CategoryServices},
	{"dentist", "8021", CategoryServices},
	{"doctor", "8011", CategoryServices},
	{"hospital", "8062", CategoryServices},
	{"veterinary_care", "0742", CategoryServices},
	{"optician", "8043", CategoryServices},
	{"hearing_aid_store", "5975", CategoryServices},
	{"medical_supply_store", "5047", CategoryServices},
	{"massage_therapist", "7297", CategoryServices},
	{"nail_salon", "7230", CategoryServices},
	{"tanning_salon", "7297", CategoryServices},
	{"tattoo_parlor", "7297", CategoryServices},
	{"barber_shop", "7230", CategoryServices},
	{"tailor", "5697", CategoryServices},
	{"shoe_repair", "7251", CategoryServices},
	{"key_shop", "7699", CategoryServices},
	{"locksmith", "7699", CategoryServices},
	{"moving_company", "4214", CategoryServices},
	{"storage", "4215", CategoryServices},
	{"plumber", "1711", CategoryServices},
	{"electrician", "1731", CategoryServices},

	// Entertainment
	{"movie_theater", "7832", CategoryEntertainment},
	{"amusement_park", "7996", CategoryEntertainment},
	{"aquarium", "7991", CategoryEntertainment},
	{"art_gallery", "5971", CategoryEntertainment},
	{"bowling_alley", "7933", CategoryEntertainment},
	{"casino", "7993", CategoryEntertainment},
	{"museum", "7991", CategoryEntertainment},
	{"night_club", "5813", CategoryEntertainment},
	{"park", "7991", CategoryEntertainment},
	{"stadium", "7941", CategoryEntertainment},
	{"zoo", "7991", CategoryEntertainment},
	{"theater", "7922", CategoryEntertainment},
	{"concert_hall", "7922", CategoryEntertainment},
	{"comedy_club", "7922", CategoryEntertainment},
	{"dance_studio", "7911", CategoryEntertainment},
	{"gym", "7997", CategoryEntertainment},
	{"fitness_center", "7997", CategoryEntertainment},
	{"yoga_studio", "7997", CategoryEntertainment},
	{"sports_club", "7997", CategoryEntertainment},
	{"golf_course", "7992", CategoryEntertainment},
	{"tennis_court", "7992", CategoryEntertainment},
	{"swimming_pool", "7997", CategoryEntertainment},
	{"arcade", "7993", CategoryEntertainment},
	{"billiards_hall", "7933", CategoryEntertainment},
	{"pool_hall", "7933", CategoryEntertainment},
	{"karaoke_bar", "5813", CategoryEntertainment},

	// Travel
	{"lodging", "7011", CategoryTravel},
	{"travel_agency", "4722", CategoryTravel},
	{"tourist_attraction", "7991", CategoryTravel},
	{"hostel", "7011", CategoryTravel},
	{"bed_and_breakfast", "7011", CategoryTravel},
	{"resort", "7011", CategoryTravel},
	{"motel", "7011", CategoryTravel},
	{"car_rental", "7512", CategoryTravel},
	{"bicycle_rental", "7512", CategoryTravel},
	{"boat_rental", "7512", CategoryTravel},
	{"tour_operator", "4722", CategoryTravel},
	{"tourist_information_center", "4722", CategoryTravel},
	{"airport", "4582", CategoryTravel},
	{"train_station", "4111", CategoryTravel},
	{"bus_station", "4112", CategoryTravel},
	{"ferry_terminal", "4113", CategoryTravel},
	{"parking", "7523", CategoryTravel},
	{"gas_station", "5541", CategoryTravel},
	{"car_dealer", "5511", CategoryTravel},
	{"motorcycle_dealer", "5571", CategoryTravel},

	// Financial
	{"bank", "6012", CategoryFinancial},
	{"atm", "6011", CategoryFinancial},
	{"insurance_agency", "6300", CategoryFinancial},
	{"accounting", "8931", CategoryFinancial},
	{"tax_preparation", "8931", CategoryFinancial},
	{"financial_advisor", "6211", CategoryFinancial},
	{"mortgage_broker", "6211", CategoryFinancial},
	{"credit_union", "6012", CategoryFinancial},
	{"currency_exchange", "6051", CategoryFinancial},
	{"pawn_shop", "5933", CategoryFinancial},
	{"check_cashing_service", "6051", CategoryFinancial},
	{"payday_loan_service", "6012", CategoryFinancial},

	// Religious
	{"church", "8661", CategoryReligious},
	{"mosque", "8661", CategoryReligious},
	{"synagogue", "8661", CategoryReligious},
	{"temple", "8661", CategoryReligious},
	{"religious_organization", "8661", CategoryReligious},
	{"religious_school", "8211", CategoryReligious},
	{"religious_bookstore", "5942", CategoryReligious},
	{"religious_goods_store", "5973", CategoryReligious},

	// Arts & Crafts
	{"art_school", "8299", CategoryArts},
	{"art_supply_store", "5971", CategoryArts},
	{"craft_store", "5971", CategoryArts},
	{"fabric_store", "5949", CategoryArts},
	{"pottery_store", "5971", CategoryArts},
	{"photography_studio", "7221", CategoryArts},
	{"musical_instrument_store", "5733", CategoryArts},
}

// index maps place types to their position in entries for O(1) lookup.
// Built once at init; place types are unique across the table.
var index = buildIndex()

// validCodes is the set of codes appearing in at least one taxonomy entry.
var validCodes = buildValidCodes()

func buildIndex() map[string]int {
	m := make(map[string]int, len(entries))
	for i, e := range entries {
		m[e.PlaceType] = i
	}
	return m
}

func buildValidCodes() map[string]bool {
	m := make(map[string]bool, len(entries))
	for _, e := range entries {
		m[e.Code] = true
	}
	return m
}

// Lookup returns the MCC code and category for a Google place type.
// It returns an error wrapping ErrUnknownType when the place type has no
// taxonomy entry.
func Lookup(placeType string) (string, Category, error) {
	i, ok := index[placeType]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownType, placeType)
	}
	return entries[i].Code, entries[i].Category, nil
}

// GetInfo returns the full Info record for a Google place type.
// It fails with the same ErrUnknownType wrapping as Lookup.
func GetInfo(placeType string) (Info, error) {
	i, ok := index[placeType]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownType, placeType)
	}
	return newInfo(entries[i]), nil
}

// newInfo synthesizes an Info record from a taxonomy entry.
func newInfo(e Entry) Info {
	return Info{
		Code:        e.Code,
		Category:    string(e.Category),
		Description: e.PlaceType + " business",
		Examples:    []string{e.PlaceType},
		MCCCategory: e.Category,
		PlaceTypes:  []string{e.PlaceType},
	}
}

// All returns a copy of the full taxonomy keyed by place type.
// The returned map is owned by the caller; mutating it does not affect the
// taxonomy. Map iteration order is unspecified.
func All() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.PlaceType] = e
	}
	return m
}

// IsValidCode reports whether code appears as the MCC code of at least one
// taxonomy entry. Note that the fallback classification is not a taxonomy
// entry, so IsValidCode says nothing about whether a code came from the
// fallback path.
func IsValidCode(code string) bool {
	return validCodes[code]
}

// ByCategory returns the Info records for every place type in the given
// category, keyed by place type. Categories with no entries yield an empty
// (non-nil) map.
func ByCategory(cat Category) map[string]Info {
	m := make(map[string]Info)
	for _, e := range entries {
		if e.Category == cat {
			m[e.PlaceType] = newInfo(e)
		}
	}
	return m
}

// Classify maps a listing's place type tags to an MCC code and category
// label. Tags are tried in order and the first one with a taxonomy entry
// wins; if none match, the fallback classification is returned. Classify
// never fails.
func Classify(placeTypes []string) (code, category string) {
	for _, t := range placeTypes {
		if i, ok := index[t]; ok {
			return entries[i].Code, string(entries[i].Category)
		}
	}
	return FallbackCode, FallbackCategory
}

// EntryCount returns the number of taxonomy entries.
func EntryCount() int {
	return len(entries)
}

// Entries returns the taxonomy table in insertion order.
// The returned slice is a copy; callers may not mutate the taxonomy.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
