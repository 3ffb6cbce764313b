// Package main provides the entry point for the MerchantScan CLI.
//
// MerchantScan discovers consumer-facing businesses around a location using
// the Google Places API and classifies each into a merchant category code.
//
// Usage:
//
//	merchantscan scan "New York, NY"
//	merchantscan codes --category Retail
//
// See --help for all available options.
package main

// main is the entry point for MerchantScan.
func main() {
	Execute()
}
