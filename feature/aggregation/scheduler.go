package aggregation

import (
	"context"
	"errors"
	"sync"
	"time"

	"catalog-aggregator/core/metrics"

	"go.uber.org/zap"
)

// ErrRunInProgress is returned by TriggerNow while another run is executing.
var ErrRunInProgress = errors.New("aggregation run already in progress")

// Aggregator runs one aggregation pass.
type Aggregator interface {
	AggregateAll(ctx context.Context) []ProviderResult
}

// Sweeper flags products that were not refreshed since cutoff.
type Sweeper interface {
	MarkStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler runs aggregation at a fixed cadence and on demand. Runs never overlap.
type Scheduler struct {
	aggregator     Aggregator
	sweeper        Sweeper
	interval       time.Duration
	staleThreshold time.Duration
	logger         *zap.Logger
	now            func() time.Time

	mu sync.Mutex
}

// NewScheduler creates a Scheduler. sweeper may be nil to disable staleness marking.
func NewScheduler(aggregator Aggregator, sweeper Sweeper, cfg Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		aggregator:     aggregator,
		sweeper:        sweeper,
		interval:       cfg.Interval(),
		staleThreshold: cfg.StaleThreshold(),
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Run aggregates immediately, then once per interval until ctx is done.
// A tick that finds a run in progress is skipped.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.mu.TryLock() {
		s.logger.Debug("Skipping tick, aggregation still running")
		return
	}
	defer s.mu.Unlock()
	s.run(ctx)
}

// TriggerNow runs aggregation synchronously, or returns ErrRunInProgress.
func (s *Scheduler) TriggerNow(ctx context.Context) ([]ProviderResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()
	return s.run(ctx), nil
}

func (s *Scheduler) run(ctx context.Context) []ProviderResult {
	results := s.aggregator.AggregateAll(ctx)

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	s.logger.Info("Aggregation run finished", zap.Int("providers", len(results)), zap.Int("succeeded", succeeded))

	s.sweep(context.WithoutCancel(ctx))
	return results
}

func (s *Scheduler) sweep(ctx context.Context) {
	if s.sweeper == nil {
		return
	}
	cutoff := s.now().Add(-s.staleThreshold)
	marked, err := s.sweeper.MarkStale(ctx, cutoff)
	if err != nil {
		s.logger.Error("Staleness sweep failed", zap.Error(err))
		return
	}
	metrics.SetStale(marked)
	if marked > 0 {
		s.logger.Info("Marked stale products", zap.Int64("count", marked), zap.Time("cutoff", cutoff))
	}
}
