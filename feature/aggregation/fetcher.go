package aggregation

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// maxPayloadBytes caps a provider response body. Larger bodies fail the fetch.
const maxPayloadBytes = 32 << 20

// Fetcher retrieves a provider's raw product payload.
type Fetcher interface {
	Fetch(ctx context.Context, ep Endpoint) ([]byte, error)
}

// FetchError is returned when a provider answers with a non-2xx status.
type FetchError struct {
	ProviderID string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("provider %s returned HTTP %d", e.ProviderID, e.StatusCode)
}

// HTTPFetcher performs GET {url}/products, rate limited across providers.
type HTTPFetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// NewHTTPFetcher creates an HTTPFetcher from the aggregation settings.
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &HTTPFetcher{
		client:   &http.Client{Timeout: cfg.FetchTimeout()},
		limiter:  rate.NewLimiter(limit, burst),
		maxBytes: maxPayloadBytes,
	}
}

// Fetch returns the response body of the provider's products endpoint.
func (f *HTTPFetcher) Fetch(ctx context.Context, ep Endpoint) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", ep.ID, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ep.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{ProviderID: ep.ID, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", ep.ID, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%s response exceeds %d bytes", ep.ID, f.maxBytes)
	}
	return body, nil
}
