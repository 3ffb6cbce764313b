package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/merchantscan/merchantscan/internal/mcc"
	"github.com/merchantscan/merchantscan/internal/places"
	"github.com/merchantscan/merchantscan/internal/ratelimit"
)

// fakeProvider is a canned-response Provider. Search pages are keyed by
// place type, or by "type:token" for continuation pages.
type fakeProvider struct {
	geocodeResults []places.LatLng
	geocodeErr     error

	pages     map[string]*places.SearchPage
	searchErr map[string]error

	details    map[string]*places.Details
	detailsErr map[string]error

	searchKeys []string
}

func (f *fakeProvider) Geocode(_ context.Context, _ string) ([]places.LatLng, error) {
	if f.geocodeErr != nil {
		return nil, f.geocodeErr
	}
	return f.geocodeResults, nil
}

func (f *fakeProvider) NearbySearch(_ context.Context, req places.SearchRequest) (*places.SearchPage, error) {
	key := req.Type
	if req.PageToken != "" {
		key = req.Type + ":" + req.PageToken
	}
	f.searchKeys = append(f.searchKeys, key)

	if err, ok := f.searchErr[key]; ok {
		return nil, err
	}
	if page, ok := f.pages[key]; ok {
		return page, nil
	}
	return &places.SearchPage{}, nil
}

func (f *fakeProvider) Details(_ context.Context, placeID string, _ []string) (*places.Details, error) {
	if err, ok := f.detailsErr[placeID]; ok {
		return nil, err
	}
	if d, ok := f.details[placeID]; ok {
		return d, nil
	}
	return &places.Details{}, nil
}

// testPlace builds a consumer-facing listing for fake pages.
func testPlace(id, name string, types ...string) places.Place {
	return places.Place{
		Name:     name,
		Vicinity: fmt.Sprintf("%s Street", name),
		Geometry: places.Geometry{Location: places.LatLng{Lat: 40.7128, Lng: -74.0060}},
		Types:    types,
		PlaceID:  id,
		Rating:   4.5,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestScraper wires a scraper with no request spacing, a generous
// ceiling, and an instant pagination sleep.
func newTestScraper(provider Provider, opts ...Option) *Scraper {
	base := []Option{
		WithLogger(discardLogger()),
		WithLimiter(ratelimit.New(0, 1000)),
	}
	s := New(provider, append(base, opts...)...)
	s.sleep = func(time.Duration) {}
	return s
}

// TestFetchMerchants tests the full discovery flow against a fake provider.
func TestFetchMerchants(t *testing.T) {
	t.Parallel()

	t.Run("classifies and enriches a discovered merchant", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			pages: map[string]*places.SearchPage{
				"restaurant": {Results: []places.Place{
					testPlace("p1", "Test Restaurant", "restaurant", "food", "point_of_interest"),
				}},
			},
			details: map[string]*places.Details{
				"p1": {FormattedPhoneNumber: "+1 212-555-0100", Website: "https://example.com"},
			},
		}

		s := newTestScraper(provider, WithSearchGroups([]mcc.SearchGroup{
			{Category: mcc.CategoryFood, Types: []string{"restaurant"}},
		}))

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.MerchantCount() != 1 {
			t.Fatalf("got %d merchants, expected 1", report.MerchantCount())
		}

		m := report.Merchants[0]
		if m.MCCCode != "5812" {
			t.Errorf("got MCC %q, expected 5812", m.MCCCode)
		}
		if m.MCCCategory != string(mcc.CategoryFood) {
			t.Errorf("got category %q, expected %q", m.MCCCategory, mcc.CategoryFood)
		}
		if m.Phone != "+1 212-555-0100" {
			t.Errorf("got phone %q, expected enrichment to apply", m.Phone)
		}
		if m.Website != "https://example.com" {
			t.Errorf("got website %q", m.Website)
		}
		if report.Latitude != 40.7128 || report.Longitude != -74.0060 {
			t.Errorf("report coordinates %f,%f not set from geocoding", report.Latitude, report.Longitude)
		}
	})

	t.Run("deduplicates a listing found under multiple types", func(t *testing.T) {
		t.Parallel()
		dup := testPlace("p1", "Corner Deli", "restaurant", "food")
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			pages: map[string]*places.SearchPage{
				"restaurant": {Results: []places.Place{dup}},
				"food":       {Results: []places.Place{dup}},
			},
		}

		s := newTestScraper(provider, WithSearchGroups([]mcc.SearchGroup{
			{Category: mcc.CategoryFood, Types: []string{"restaurant", "food"}},
		}))

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.MerchantCount() != 1 {
			t.Errorf("got %d merchants, expected the duplicate to be dropped", report.MerchantCount())
		}
	})

	t.Run("drops listings that are not consumer facing", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			pages: map[string]*places.SearchPage{
				"restaurant": {Results: []places.Place{
					testPlace("p1", "Realty Office", "real_estate_agency", "point_of_interest"),
					testPlace("p2", "Actual Restaurant", "restaurant"),
				}},
			},
		}

		s := newTestScraper(provider, WithSearchGroups([]mcc.SearchGroup{
			{Category: mcc.CategoryFood, Types: []string{"restaurant"}},
		}))

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.MerchantCount() != 1 {
			t.Fatalf("got %d merchants, expected only the restaurant", report.MerchantCount())
		}
		if report.Merchants[0].PlaceID != "p2" {
			t.Errorf("got %q, expected p2", report.Merchants[0].PlaceID)
		}
	})

	t.Run("follows continuation tokens and keeps partial results on page failure", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			pages: map[string]*places.SearchPage{
				"restaurant": {
					Results:       []places.Place{testPlace("p1", "First", "restaurant")},
					NextPageToken: "tok2",
				},
				"restaurant:tok2": {
					Results:       []places.Place{testPlace("p2", "Second", "restaurant")},
					NextPageToken: "tok3",
				},
			},
			searchErr: map[string]error{
				"restaurant:tok3": errors.New("token expired"),
			},
		}

		var sleeps []time.Duration
		s := newTestScraper(provider,
			WithSearchGroups([]mcc.SearchGroup{{Category: mcc.CategoryFood, Types: []string{"restaurant"}}}),
			WithPaginationDelay(2*time.Second),
		)
		s.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.MerchantCount() != 2 {
			t.Errorf("got %d merchants, expected the first two pages kept", report.MerchantCount())
		}
		if len(sleeps) != 2 {
			t.Fatalf("got %d pagination sleeps, expected 2", len(sleeps))
		}
		for _, d := range sleeps {
			if d != 2*time.Second {
				t.Errorf("got pagination sleep %v, expected 2s", d)
			}
		}
	})

	t.Run("a failing type does not end the sweep", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			searchErr: map[string]error{
				"restaurant": errors.New("search unavailable"),
			},
			pages: map[string]*places.SearchPage{
				"cafe": {Results: []places.Place{testPlace("p1", "Quiet Cafe", "cafe")}},
			},
		}

		s := newTestScraper(provider, WithSearchGroups([]mcc.SearchGroup{
			{Category: mcc.CategoryFood, Types: []string{"restaurant", "cafe"}},
		}))

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.MerchantCount() != 1 {
			t.Errorf("got %d merchants, expected the cafe despite the restaurant failure", report.MerchantCount())
		}
	})

	t.Run("a failing enrichment skips only that listing", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			pages: map[string]*places.SearchPage{
				"restaurant": {Results: []places.Place{
					testPlace("p1", "Broken Details", "restaurant"),
					testPlace("p2", "Working Details", "restaurant"),
				}},
			},
			detailsErr: map[string]error{
				"p1": errors.New("details unavailable"),
			},
		}

		s := newTestScraper(provider, WithSearchGroups([]mcc.SearchGroup{
			{Category: mcc.CategoryFood, Types: []string{"restaurant"}},
		}))

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.MerchantCount() != 1 {
			t.Fatalf("got %d merchants, expected the broken row skipped", report.MerchantCount())
		}
		if report.Merchants[0].PlaceID != "p2" {
			t.Errorf("got %q, expected p2", report.Merchants[0].PlaceID)
		}
	})

	t.Run("geocoding failure is fatal", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{geocodeErr: places.ErrNoGeocodeResult}

		s := newTestScraper(provider)

		report, err := s.FetchMerchants(context.Background(), "nowhere at all", 5000)
		if !errors.Is(err, places.ErrNoGeocodeResult) {
			t.Errorf("got %v, expected ErrNoGeocodeResult", err)
		}
		if report.MerchantCount() != 0 {
			t.Errorf("got %d merchants, expected none", report.MerchantCount())
		}
		if len(provider.searchKeys) != 0 {
			t.Errorf("sweep ran %d searches after a failed geocode", len(provider.searchKeys))
		}
	})

	t.Run("quota exhaustion ends the run with partial results", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			pages: map[string]*places.SearchPage{
				"restaurant": {Results: []places.Place{testPlace("p1", "First", "restaurant")}},
				"cafe":       {Results: []places.Place{testPlace("p2", "Second", "cafe")}},
			},
		}

		// Geocode, restaurant search, and p1 details fit; the cafe
		// search hits the ceiling.
		s := newTestScraper(provider,
			WithLimiter(ratelimit.New(0, 4)),
			WithSearchGroups([]mcc.SearchGroup{
				{Category: mcc.CategoryFood, Types: []string{"restaurant", "cafe"}},
			}),
		)

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 5000)
		if !errors.Is(err, ratelimit.ErrQuotaExceeded) {
			t.Fatalf("got %v, expected ErrQuotaExceeded", err)
		}
		if report.MerchantCount() != 1 {
			t.Errorf("got %d merchants, expected the pre-quota result kept", report.MerchantCount())
		}
	})

	t.Run("cancellation ends the run", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := newTestScraper(provider)

		_, err := s.FetchMerchants(ctx, "New York, NY", 5000)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, expected context.Canceled", err)
		}
	})

	t.Run("non-positive radius falls back to the configured default", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
		}

		s := newTestScraper(provider, WithRadius(1234), WithSearchGroups(nil))

		report, err := s.FetchMerchants(context.Background(), "New York, NY", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Radius != 1234 {
			t.Errorf("got radius %d, expected the default 1234", report.Radius)
		}
	})
}

// TestRun tests the swallow-and-report entry point.
func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("returns an empty report instead of failing", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{geocodeErr: places.ErrNoGeocodeResult}

		s := newTestScraper(provider)

		report := s.Run(context.Background(), "nowhere at all", 5000)
		if report == nil {
			t.Fatal("expected a report even on fetch failure")
		}
		if report.MerchantCount() != 0 {
			t.Errorf("got %d merchants, expected none", report.MerchantCount())
		}
	})

	t.Run("counts every rate-limited request", func(t *testing.T) {
		t.Parallel()
		provider := &fakeProvider{
			geocodeResults: []places.LatLng{{Lat: 40.7128, Lng: -74.0060}},
			pages: map[string]*places.SearchPage{
				"restaurant": {Results: []places.Place{testPlace("p1", "First", "restaurant")}},
			},
		}

		s := newTestScraper(provider, WithSearchGroups([]mcc.SearchGroup{
			{Category: mcc.CategoryFood, Types: []string{"restaurant"}},
		}))

		report := s.Run(context.Background(), "New York, NY", 5000)
		// Geocode, one search, one details call.
		if report.RequestCount != 3 {
			t.Errorf("got %d requests, expected 3", report.RequestCount)
		}
	})
}
