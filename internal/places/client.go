package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production Places web API host.
const DefaultBaseURL = "https://maps.googleapis.com"

// defaultUserAgent identifies merchantscan in HTTP requests.
const defaultUserAgent = "merchantscan/1.0 (+https://github.com/merchantscan/merchantscan)"

// statusOK and statusZeroResults are the provider statuses the client
// treats as success.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Client talks to the Places web API: geocoding, nearby search, and place
// details. It performs no rate limiting itself; callers are expected to
// space their calls.
type Client struct {
	// httpClient issues the requests. Injected so tests can point the
	// client at a local server.
	httpClient *http.Client

	// baseURL is the API host, without a trailing slash.
	baseURL string

	// apiKey is the credential appended to every request.
	apiKey string

	// userAgent is the User-Agent header sent with every request.
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API host. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
// Ignored when WithHTTPClient is also supplied after it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Places API client with the given credential.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// geocodeResponse is the wire shape of the geocoding endpoint.
type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry Geometry `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-form location string to coordinates.
// An empty result set returns ErrNoGeocodeResult.
func (c *Client) Geocode(ctx context.Context, query string) ([]LatLng, error) {
	params := url.Values{}
	params.Set("address", query)

	var resp geocodeResponse
	if err := c.get(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, fmt.Errorf("geocode %q: %w", query, &StatusError{Status: resp.Status, Message: resp.ErrorMessage})
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNoGeocodeResult)
	}

	coords := make([]LatLng, len(resp.Results))
	for i, r := range resp.Results {
		coords[i] = r.Geometry.Location
	}
	return coords, nil
}

// searchResponse is the wire shape of the nearby-search endpoint.
type searchResponse struct {
	Status        string  `json:"status"`
	ErrorMessage  string  `json:"error_message"`
	Results       []Place `json:"results"`
	NextPageToken string  `json:"next_page_token"`
}

// NearbySearch returns one page of listings matching the request.
// ZERO_RESULTS yields an empty page, not an error.
func (c *Client) NearbySearch(ctx context.Context, req SearchRequest) (*SearchPage, error) {
	params := url.Values{}
	params.Set("location", formatLatLng(req.Lat, req.Lng))
	params.Set("radius", strconv.Itoa(req.Radius))
	params.Set("type", req.Type)
	if req.PageToken != "" {
		params.Set("pagetoken", req.PageToken)
	}

	var resp searchResponse
	if err := c.get(ctx, "/maps/api/place/nearbysearch/json", params, &resp); err != nil {
		return nil, fmt.Errorf("nearby search type %q: %w", req.Type, err)
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, fmt.Errorf("nearby search type %q: %w", req.Type, &StatusError{Status: resp.Status, Message: resp.ErrorMessage})
	}

	return &SearchPage{
		Results:       resp.Results,
		NextPageToken: resp.NextPageToken,
	}, nil
}

// detailsResponse is the wire shape of the place-details endpoint.
type detailsResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Result       Details `json:"result"`
}

// Details fetches enrichment fields for a single listing.
func (c *Client) Details(ctx context.Context, placeID string, fields []string) (*Details, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", strings.Join(fields, ","))

	var resp detailsResponse
	if err := c.get(ctx, "/maps/api/place/details/json", params, &resp); err != nil {
		return nil, fmt.Errorf("details %q: %w", placeID, err)
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, fmt.Errorf("details %q: %w", placeID, &StatusError{Status: resp.Status, Message: resp.ErrorMessage})
	}

	result := resp.Result
	return &result, nil
}

// get issues one GET request and decodes the JSON response into out.
// The credential is appended here so it appears in exactly one place.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close error is not actionable

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the error message, then discard.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck // Best effort
		return fmt.Errorf("unexpected HTTP status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// formatLatLng renders coordinates in the provider's "lat,lng" form.
func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
