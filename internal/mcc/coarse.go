package mcc

import "strings"

// coarseCategories maps generic business type keywords to broad category
// labels for report summaries. This is a deliberately independent, coarser
// policy than the fine taxonomy: it includes labels the taxonomy does not
// (Automotive, Healthcare, Education) and collapses everything unknown into
// "Other" instead of using the MCC fallback.
var coarseCategories = map[string]string{
	"restaurant":             "Food & Beverage",
	"grocery_or_supermarket": "Retail",
	"retail":                 "Retail",
	"service":                "Services",
	"entertainment":          "Entertainment",
	"travel":                 "Travel",
	"automotive":             "Automotive",
	"health":                 "Healthcare",
	"education":              "Education",
	"other":                  "Other",
}

// CoarseCategory maps a business type to its broad summary category.
// Matching is case-insensitive and unknown types map to "Other".
func CoarseCategory(businessType string) string {
	if c, ok := coarseCategories[strings.ToLower(businessType)]; ok {
		return c
	}
	return "Other"
}
