// Package geocode resolves "city, country" place names to coordinates using a
// Nominatim-compatible search endpoint.
//
// A lookup is a single outbound request. Nothing is retried and nothing is
// cached; the caller decides what to show the user.
package geocode

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/fastjson"

	"github.com/pkordes/travel-log/internal/domain"
	"github.com/pkordes/travel-log/internal/metrics"
)

// DefaultEndpoint is the public OpenStreetMap Nominatim search API.
const DefaultEndpoint = "https://nominatim.openstreetmap.org/search"

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 1 << 20

// Client queries a Nominatim search endpoint.
// The zero value is not usable; construct with New.
type Client struct {
	http      *http.Client
	endpoint  string
	userAgent string
}

// New returns a Client for endpoint. Every request is bounded by timeout and
// carries userAgent, which Nominatim's usage policy requires.
func New(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		endpoint:  endpoint,
		userAgent: userAgent,
	}
}

// Geocode looks up "<city>, <country>" and returns the first candidate's
// coordinates.
//
// Returns domain.ErrNotFound when the provider has no candidates or answers
// with a shape it does not recognise. Returns domain.ErrUpstream when the
// provider cannot be reached, times out, or answers with a non-2xx status.
func (c *Client) Geocode(ctx context.Context, city, country string) (domain.Coordinates, error) {
	start := time.Now()
	coords, outcome, err := c.lookup(ctx, city, country)
	metrics.GeocodeDuration.Observe(time.Since(start).Seconds())
	metrics.GeocodeLookups.WithLabelValues(outcome).Inc()
	return coords, err
}

func (c *Client) lookup(ctx context.Context, city, country string) (domain.Coordinates, string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return domain.Coordinates{}, metrics.OutcomeUpstreamError,
			fmt.Errorf("geocode.Client.Geocode: parse endpoint: %w: %w", domain.ErrUpstream, err)
	}
	q := u.Query()
	q.Set("q", city+", "+country)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Coordinates{}, metrics.OutcomeUpstreamError,
			fmt.Errorf("geocode.Client.Geocode: build request: %w: %w", domain.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Coordinates{}, metrics.OutcomeUpstreamError,
			fmt.Errorf("geocode.Client.Geocode: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Coordinates{}, metrics.OutcomeUpstreamError,
			fmt.Errorf("geocode.Client.Geocode: %w: provider returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Coordinates{}, metrics.OutcomeUpstreamError,
			fmt.Errorf("geocode.Client.Geocode: read body: %w: %w", domain.ErrUpstream, err)
	}

	coords, ok := firstCandidate(body)
	if !ok {
		return domain.Coordinates{}, metrics.OutcomeNotFound,
			fmt.Errorf("geocode.Client.Geocode: %q: %w", city+", "+country, domain.ErrNotFound)
	}
	return coords, metrics.OutcomeFound, nil
}

// firstCandidate extracts lat/lon from the first element of a Nominatim
// result array. Nominatim encodes both as decimal strings; plain numbers are
// accepted too.
func firstCandidate(body []byte) (domain.Coordinates, bool) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil || v.Type() != fastjson.TypeArray {
		return domain.Coordinates{}, false
	}
	candidates, _ := v.Array()
	if len(candidates) == 0 {
		return domain.Coordinates{}, false
	}

	lat, ok := coordinate(candidates[0].Get("lat"), 90)
	if !ok {
		return domain.Coordinates{}, false
	}
	lon, ok := coordinate(candidates[0].Get("lon"), 180)
	if !ok {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, true
}

func coordinate(v *fastjson.Value, limit float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	var (
		f   float64
		err error
	)
	switch v.Type() {
	case fastjson.TypeString:
		f, err = strconv.ParseFloat(string(v.GetStringBytes()), 64)
	case fastjson.TypeNumber:
		f, err = v.Float64()
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || f < -limit || f > limit {
		return 0, false
	}
	return f, true
}
