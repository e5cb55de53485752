package aggregation

import (
	"context"
	"fmt"
	"time"

	"catalog-aggregator/core/events"
	"catalog-aggregator/core/logger"
	"catalog-aggregator/core/metrics"
	"catalog-aggregator/feature/aggregation/normalize"
	"catalog-aggregator/feature/aggregation/reconcile"

	"go.uber.org/zap"
)

// ProviderResult is the outcome of aggregating one provider.
// Count is omitted on failure and Error on success.
type ProviderResult struct {
	ProviderID string `json:"providerId"`
	Success    bool   `json:"success"`
	Count      *int   `json:"count,omitempty"`
	Error      string `json:"error,omitempty"`
}

func succeeded(providerID string, count int) ProviderResult {
	return ProviderResult{ProviderID: providerID, Success: true, Count: &count}
}

func failed(providerID string, err error) ProviderResult {
	return ProviderResult{ProviderID: providerID, Error: err.Error()}
}

// Orchestrator runs fetch, normalization and reconciliation for every
// configured provider, one provider at a time.
type Orchestrator struct {
	endpoints []Endpoint
	fetcher   Fetcher
	registry  *normalize.Registry
	committer *reconcile.Committer
	archiver  *Archiver
	publisher events.Publisher
	status    *StatusTracker
	logger    *zap.Logger
}

// Option configures optional Orchestrator collaborators.
type Option func(*Orchestrator)

// WithArchiver stores every fetched payload before it is normalized.
func WithArchiver(a *Archiver) Option {
	return func(o *Orchestrator) { o.archiver = a }
}

// WithPublisher emits one event per recorded price change.
func WithPublisher(p events.Publisher) Option {
	return func(o *Orchestrator) { o.publisher = p }
}

// WithStatusTracker records fetch statistics.
func WithStatusTracker(t *StatusTracker) Option {
	return func(o *Orchestrator) { o.status = t }
}

// NewOrchestrator creates an Orchestrator over endpoints, in that order.
func NewOrchestrator(endpoints []Endpoint, fetcher Fetcher, registry *normalize.Registry, committer *reconcile.Committer, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		endpoints: endpoints,
		fetcher:   fetcher,
		registry:  registry,
		committer: committer,
		publisher: events.NoopPublisher{},
		status:    NewStatusTracker(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Endpoints returns the providers in aggregation order.
func (o *Orchestrator) Endpoints() []Endpoint {
	return o.endpoints
}

// Status returns the fetch statistics tracker.
func (o *Orchestrator) Status() *StatusTracker {
	return o.status
}

// AggregateAll processes every provider and returns one result per provider,
// in configured order. A started run is not interrupted by ctx cancellation.
func (o *Orchestrator) AggregateAll(ctx context.Context) []ProviderResult {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	results := make([]ProviderResult, 0, len(o.endpoints))
	for _, ep := range o.endpoints {
		results = append(results, o.aggregate(ctx, ep))
	}

	metrics.RecordRun(time.Since(start))
	return results
}

func (o *Orchestrator) aggregate(ctx context.Context, ep Endpoint) (res ProviderResult) {
	l := logger.WithProvider(o.logger, ep.ID)

	defer func() {
		if r := recover(); r != nil {
			l.Error("Provider aggregation panicked", zap.Any("panic", r))
			res = failed(ep.ID, fmt.Errorf("internal error: %v", r))
		}
	}()

	start := time.Now()
	raw, err := o.fetcher.Fetch(ctx, ep)
	elapsed := time.Since(start)
	metrics.RecordFetch(ep.ID, err == nil, elapsed)
	o.status.Record(ep.ID, err == nil, elapsed)
	if err != nil {
		l.Warn("Failed to fetch provider", zap.String("url", ep.URL), zap.Error(err))
		return failed(ep.ID, err)
	}

	if o.archiver != nil {
		if key, err := o.archiver.Store(ctx, ep.ID, raw); err != nil {
			l.Warn("Failed to archive payload", zap.Error(err))
		} else {
			l.Debug("Archived payload", zap.String("key", key))
		}
	}

	items := o.registry.Normalize(ep.ID, raw)
	batch := o.committer.Commit(ctx, ep.ID, items)
	metrics.RecordCommit(ep.ID, batch.Created, batch.Updated, batch.Skipped, batch.PriceChanges)

	if len(batch.Events) > 0 {
		if err := o.publisher.Publish(ctx, batch.Events); err != nil {
			l.Warn("Failed to publish price changes", zap.Int("events", len(batch.Events)), zap.Error(err))
		}
	}

	l.Info("Provider aggregated",
		zap.Int("normalized", len(items)),
		zap.Int("committed", batch.Committed),
		zap.Int("created", batch.Created),
		zap.Int("updated", batch.Updated),
		zap.Int("price_changes", batch.PriceChanges),
		zap.Int("skipped", batch.Skipped),
		zap.Duration("fetch_duration", elapsed),
	)
	return succeeded(ep.ID, batch.Committed)
}
