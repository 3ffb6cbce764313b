package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/merchantscan/merchantscan/internal/config"
	"github.com/merchantscan/merchantscan/internal/mcc"
	"github.com/merchantscan/merchantscan/internal/model"
	"github.com/merchantscan/merchantscan/internal/places"
	"github.com/merchantscan/merchantscan/internal/ratelimit"
)

// Provider is the slice of the Places API the scraper depends on.
// places.Client satisfies it; tests substitute fakes.
type Provider interface {
	// Geocode resolves a free-form location string to coordinates.
	Geocode(ctx context.Context, query string) ([]places.LatLng, error)

	// NearbySearch returns one page of listings matching the request.
	NearbySearch(ctx context.Context, req places.SearchRequest) (*places.SearchPage, error)

	// Details fetches enrichment fields for a single listing.
	Details(ctx context.Context, placeID string, fields []string) (*places.Details, error)
}

// Scraper drives one merchant discovery run: geocode the location, sweep
// every configured place type with a paginated nearby search, classify and
// deduplicate the results.
//
// All outbound calls are strictly sequential and pass through the rate
// limiter. Failures are isolated per level: a failing search abandons only
// its place type, a failing page ends only that type's pagination, and a
// failing row is skipped. Only geocoding failure and quota exhaustion end
// the run.
type Scraper struct {
	// provider issues the API calls.
	provider Provider

	// limiter enforces call spacing and the per-run ceiling.
	limiter *ratelimit.Limiter

	// logger receives structured progress and failure records.
	logger *slog.Logger

	// radius is the default search radius in meters, used when the caller
	// passes a non-positive radius.
	radius int

	// paginationDelay is the fixed sleep before requesting a next page.
	// It is not routed through the limiter: the delay alone exceeds the
	// minimum request spacing.
	paginationDelay time.Duration

	// groups is the sweep table, iterated in order.
	groups []mcc.SearchGroup

	// seen is the run-scoped dedup set of place IDs. Reset at the start of
	// every run.
	seen map[string]bool

	// sleep indirection over time.Sleep for tests.
	sleep func(time.Duration)
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLimiter sets a custom rate limiter.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(s *Scraper) {
		s.limiter = l
	}
}

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithRadius sets the default search radius in meters.
func WithRadius(radius int) Option {
	return func(s *Scraper) {
		s.radius = radius
	}
}

// WithPaginationDelay sets the sleep between result pages.
func WithPaginationDelay(d time.Duration) Option {
	return func(s *Scraper) {
		s.paginationDelay = d
	}
}

// WithSearchGroups replaces the built-in sweep table.
func WithSearchGroups(groups []mcc.SearchGroup) Option {
	return func(s *Scraper) {
		s.groups = groups
	}
}

// New creates a Scraper backed by the given provider.
func New(provider Provider, opts ...Option) *Scraper {
	s := &Scraper{
		provider:        provider,
		radius:          config.DefaultRadius,
		paginationDelay: config.DefaultPaginationDelay,
		groups:          mcc.SearchGroups,
		sleep:           time.Sleep,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.limiter == nil {
		s.limiter = ratelimit.New(config.DefaultMinRequestInterval, config.MaxRequestsPerDay)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Run executes a full discovery run and never fails for recoverable
// conditions: fetch failures are logged and the merchants collected so far
// (possibly none) are returned in the report. Quota exhaustion and
// cancellation likewise end the run with whatever was already collected.
func (s *Scraper) Run(ctx context.Context, location string, radius int) *model.ScanReport {
	report, err := s.FetchMerchants(ctx, location, radius)
	if err != nil {
		s.logger.Error("fetch ended early",
			"location", location,
			"merchants", report.MerchantCount(),
			"error", err,
		)
	}
	return report
}

// FetchMerchants geocodes the location and sweeps every configured place
// type, returning the deduplicated merchant list in discovery order.
//
// The returned report is always non-nil and carries whatever was collected
// before the returned error (if any) occurred. Zero merchants with a nil
// error is a valid empty result.
func (s *Scraper) FetchMerchants(ctx context.Context, location string, radius int) (*model.ScanReport, error) {
	if radius <= 0 {
		radius = s.radius
	}

	report := model.NewScanReport(location, radius)
	s.seen = make(map[string]bool)

	defer func() {
		report.Duration = time.Since(report.StartedAt)
		report.RequestCount = s.limiter.Calls()
	}()

	center, err := s.geocode(ctx, location)
	if err != nil {
		return report, err
	}
	report.Latitude = center.Lat
	report.Longitude = center.Lng

	s.logger.Info("location resolved",
		"location", location,
		"lat", center.Lat,
		"lng", center.Lng,
		"radius", radius,
	)

	for _, group := range s.groups {
		s.logger.Info("searching category", "category", group.Category)

		for _, placeType := range group.Types {
			err := s.sweepType(ctx, report, center, radius, placeType)
			if err == nil {
				continue
			}
			if isFatal(err) {
				return report, err
			}
			// One failing type must not end the sweep.
			s.logger.Error("search failed",
				"category", group.Category,
				"type", placeType,
				"error", err,
			)
		}
	}

	s.logger.Info("sweep complete",
		"location", location,
		"merchants", report.MerchantCount(),
		"requests", s.limiter.Calls(),
	)

	return report, nil
}

// geocode resolves the location through one rate-limited call. The first
// candidate wins when the provider returns several.
func (s *Scraper) geocode(ctx context.Context, location string) (places.LatLng, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return places.LatLng{}, err
	}

	coords, err := s.provider.Geocode(ctx, location)
	if err != nil {
		return places.LatLng{}, err
	}
	if len(coords) == 0 {
		return places.LatLng{}, places.ErrNoGeocodeResult
	}
	return coords[0], nil
}

// sweepType runs the paginated nearby search for one place type and feeds
// every row through result processing. A failing page request ends only
// this type's pagination; rows collected from earlier pages are kept.
func (s *Scraper) sweepType(ctx context.Context, report *model.ScanReport, center places.LatLng, radius int, placeType string) error {
	req := places.SearchRequest{
		Lat:    center.Lat,
		Lng:    center.Lng,
		Radius: radius,
		Type:   placeType,
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return err
	}
	page, err := s.provider.NearbySearch(ctx, req)
	if err != nil {
		return err
	}

	if err := s.processPage(ctx, report, page); err != nil {
		return err
	}

	for page.NextPageToken != "" {
		// The token needs a propagation window before it becomes valid.
		s.sleep(s.paginationDelay)

		if err := s.limiter.Acquire(ctx); err != nil {
			return err
		}

		req.PageToken = page.NextPageToken
		next, err := s.provider.NearbySearch(ctx, req)
		if err != nil {
			s.logger.Warn("pagination failed, keeping partial results",
				"type", placeType,
				"error", err,
			)
			break
		}

		page = next
		if err := s.processPage(ctx, report, page); err != nil {
			return err
		}
	}

	return nil
}

// processPage feeds every row of a page through result processing.
// Row-level failures are logged and skipped; only fatal errors propagate.
func (s *Scraper) processPage(ctx context.Context, report *model.ScanReport, page *places.SearchPage) error {
	for i := range page.Results {
		err := s.processPlace(ctx, report, &page.Results[i])
		if err == nil {
			continue
		}
		if isFatal(err) {
			return err
		}
		s.logger.Warn("skipping listing",
			"place_id", page.Results[i].PlaceID,
			"error", err,
		)
	}
	return nil
}

// processPlace applies result processing to one raw row: B2C filter, dedup,
// rate-limited detail enrichment, classification, merchant construction.
// Rows that are filtered or already seen are dropped silently.
func (s *Scraper) processPlace(ctx context.Context, report *model.ScanReport, place *places.Place) error {
	if !mcc.IsB2C(place.Types) {
		return nil
	}

	if s.seen[place.PlaceID] {
		return nil
	}
	s.seen[place.PlaceID] = true

	if err := s.limiter.Acquire(ctx); err != nil {
		return err
	}
	details, err := s.provider.Details(ctx, place.PlaceID, places.DetailFields)
	if err != nil {
		return err
	}

	code, category := mcc.Classify(place.Types)

	report.AddMerchant(model.Merchant{
		Name:          place.Name,
		Address:       place.Vicinity,
		Latitude:      place.Geometry.Location.Lat,
		Longitude:     place.Geometry.Location.Lng,
		BusinessTypes: place.Types,
		MCCCode:       code,
		MCCCategory:   category,
		PlaceID:       place.PlaceID,
		Rating:        place.Rating,
		RatingCount:   place.UserRatingsTotal,
		PriceLevel:    place.PriceLevel,
		IsOpen:        place.OpenNow(),
		Phone:         details.FormattedPhoneNumber,
		Website:       details.Website,
	})

	return nil
}

// isFatal reports whether an error must end the whole run rather than be
// absorbed at the type, page, or row level.
func isFatal(err error) bool {
	return errors.Is(err, ratelimit.ErrQuotaExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
