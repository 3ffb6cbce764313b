// Package mcc maps Google Places business types to MCC (Merchant Category
// Code) classifications.
//
// The package holds three independent pieces of static data:
//   - The fine-grained taxonomy: one entry per Google place type, mapping it
//     to a 4-character MCC code and one of eight categories. See Lookup,
//     Info, All, IsValidCode, and ByCategory.
//   - The B2C sweep table: the curated list of consumer-facing place types
//     the scraper searches for, grouped by category. See SearchGroups and
//     IsB2C.
//   - The coarse policy: a much smaller mapping used only for report
//     summaries. See CoarseCategory.
//
// All tables are populated at package initialization and never mutated.
// Classification of a multi-tagged listing is a linear scan over the tags in
// order: the first tag with a taxonomy entry wins, and listings with no
// matching tag fall back to code 5399 ("Miscellaneous General Merchandise").
package mcc
