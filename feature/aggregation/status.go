package aggregation

import (
	"sync"
	"time"
)

const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// unhealthyAfter is the number of consecutive failed fetches that marks a provider unhealthy.
const unhealthyAfter = 3

// ProviderStats are the fetch statistics of one provider since startup.
type ProviderStats struct {
	LastFetchAt    *time.Time `json:"lastFetchAt"`
	LastSuccessAt  *time.Time `json:"lastSuccessAt"`
	FailureCount   int        `json:"failureCount"`
	TotalRequests  int        `json:"totalRequests"`
	SuccessfulReqs int        `json:"successfulReqs"`

	totalDuration time.Duration
}

// SuccessRate is the percentage of successful fetches, 0 before the first fetch.
func (s ProviderStats) SuccessRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.SuccessfulReqs) / float64(s.TotalRequests) * 100
}

// AverageResponseTime is the mean fetch duration, or nil before the first fetch.
func (s ProviderStats) AverageResponseTime() *float64 {
	if s.TotalRequests == 0 {
		return nil
	}
	ms := float64(s.totalDuration.Milliseconds()) / float64(s.TotalRequests)
	return &ms
}

// HealthStatus classifies the provider. FailureCount counts consecutive failures.
func (s ProviderStats) HealthStatus() string {
	switch {
	case s.FailureCount >= unhealthyAfter:
		return HealthUnhealthy
	case s.TotalRequests == 0, s.FailureCount > 0, s.SuccessRate() < 90:
		return HealthDegraded
	default:
		return HealthHealthy
	}
}

// StatusTracker keeps per-provider fetch statistics in memory.
type StatusTracker struct {
	mu    sync.RWMutex
	stats map[string]ProviderStats
	now   func() time.Time
}

// NewStatusTracker creates an empty StatusTracker.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		stats: make(map[string]ProviderStats),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Record registers one fetch attempt.
func (t *StatusTracker) Record(providerID string, ok bool, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	at := t.now()
	s := t.stats[providerID]
	s.LastFetchAt = &at
	s.TotalRequests++
	s.totalDuration += duration
	if ok {
		s.LastSuccessAt = &at
		s.SuccessfulReqs++
		s.FailureCount = 0
	} else {
		s.FailureCount++
	}
	t.stats[providerID] = s
}

// Get returns a copy of the statistics for providerID.
func (t *StatusTracker) Get(providerID string) ProviderStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats[providerID]
}
