package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"carpool-planner/internal/ports"
)

// NominatimClient queries the OpenStreetMap Nominatim search endpoint for the
// top free-text match. Nominatim's usage policy caps clients at one request
// per second; the shared limiter enforces that spacing across calls.
type NominatimClient struct {
	session   *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

func NewNominatimClient(baseURL string) *NominatimClient {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &NominatimClient{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		userAgent: "carpool-planner/1.0",
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// getWithRetry retries transient failures (network errors, 429/5xx) with a
// doubling backoff. The limiter already spaces the initial attempts, so the
// retry budget is small.
func (n *NominatimClient) getWithRetry(ctx context.Context, endpoint string) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 300 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create geocode request: %w", err)
		}
		req.Header.Set("User-Agent", n.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := n.session.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		retry := false
		if err != nil {
			lastErr = fmt.Errorf("execute geocode request: %w", err)
			retry = true
		} else {
			resp.Body.Close()
			lastErr = fmt.Errorf("geocoder returned status %d", resp.StatusCode)
			retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search returns the top match for the query.
func (n *NominatimClient) Search(ctx context.Context, query string) (ports.ResolvedLocation, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return ports.ResolvedLocation{}, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	endpoint := n.baseURL + "/search?" + params.Encode()

	resp, err := n.getWithRetry(ctx, endpoint)
	if err != nil {
		return ports.ResolvedLocation{}, err
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return ports.ResolvedLocation{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return ports.ResolvedLocation{}, fmt.Errorf("no geocode results for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return ports.ResolvedLocation{}, fmt.Errorf("parse geocode latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return ports.ResolvedLocation{}, fmt.Errorf("parse geocode longitude %q: %w", results[0].Lon, err)
	}

	loc := ports.ResolvedLocation{DisplayName: results[0].DisplayName}
	loc.Coordinate.Lat = lat
	loc.Coordinate.Lng = lng

	if err := loc.Coordinate.Validate(); err != nil {
		return ports.ResolvedLocation{}, fmt.Errorf("geocode result for %q: %w", query, err)
	}

	return loc, nil
}
