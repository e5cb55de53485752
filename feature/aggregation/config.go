package aggregation

import (
	"fmt"
	"strings"
	"time"
)

// Config holds scheduling, fetching and archiving settings.
type Config struct {
	// IntervalSeconds is the cadence of scheduled runs.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"10"`
	// StaleThresholdSeconds is the age after which a product not refreshed is flagged stale.
	StaleThresholdSeconds int `mapstructure:"stale_threshold_seconds" default:"30"`
	// FetchTimeoutSeconds bounds a single provider request.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" default:"10"`
	// RateLimit is the maximum number of provider requests per second.
	RateLimit float64 `mapstructure:"rate_limit" default:"5"`
	// RateBurst is the limiter burst size.
	RateBurst int `mapstructure:"rate_burst" default:"1"`
	// ArchiveEnabled stores every fetched payload in object storage.
	ArchiveEnabled bool `mapstructure:"archive_enabled" default:"false"`
	// ArchivePrefix is the object key prefix for archived payloads.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"payloads"`
	// ArchiveKeep is the number of payloads kept per provider. 0 keeps all.
	ArchiveKeep int `mapstructure:"archive_keep" default:"50"`
}

// Interval returns the run cadence, defaulting to 10s.
func (c Config) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// StaleThreshold returns the staleness threshold, defaulting to 30s.
func (c Config) StaleThreshold() time.Duration {
	if c.StaleThresholdSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.StaleThresholdSeconds) * time.Second
}

// FetchTimeout returns the per-request timeout, defaulting to 10s.
func (c Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ProvidersConfig holds the upstream provider base URLs.
type ProvidersConfig struct {
	Provider1 string `mapstructure:"provider1" default:"http://localhost:3001"`
	Provider2 string `mapstructure:"provider2" default:"http://localhost:3002"`
	Provider3 string `mapstructure:"provider3" default:"http://localhost:3003"`
	// Extra lists additional providers as comma-separated id=url pairs.
	Extra string `mapstructure:"extra" default:""`
}

// Endpoint is one provider to aggregate.
type Endpoint struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Endpoints returns the configured providers in aggregation order.
// Providers with an empty URL are skipped.
func (p ProvidersConfig) Endpoints() ([]Endpoint, error) {
	endpoints := make([]Endpoint, 0, 3)
	seen := make(map[string]bool)

	add := func(id, url string) error {
		if url == "" {
			return nil
		}
		if seen[id] {
			return fmt.Errorf("duplicate provider %q", id)
		}
		seen[id] = true
		endpoints = append(endpoints, Endpoint{ID: id, URL: strings.TrimRight(url, "/")})
		return nil
	}

	_ = add("provider1", strings.TrimSpace(p.Provider1))
	_ = add("provider2", strings.TrimSpace(p.Provider2))
	_ = add("provider3", strings.TrimSpace(p.Provider3))

	for _, pair := range strings.Split(p.Extra, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, url, ok := strings.Cut(pair, "=")
		id, url = strings.TrimSpace(id), strings.TrimSpace(url)
		if !ok || id == "" || url == "" {
			return nil, fmt.Errorf("invalid provider entry %q, expected id=url", pair)
		}
		if err := add(id, url); err != nil {
			return nil, err
		}
	}

	return endpoints, nil
}

// URLs maps every known provider id to its URL, including empty ones.
func (p ProvidersConfig) URLs() map[string]string {
	urls := map[string]string{
		"provider1": p.Provider1,
		"provider2": p.Provider2,
		"provider3": p.Provider3,
	}
	if endpoints, err := p.Endpoints(); err == nil {
		for _, ep := range endpoints {
			urls[ep.ID] = ep.URL
		}
	}
	return urls
}
