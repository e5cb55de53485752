package cmd

import (
	"context"
	"fmt"

	"catalog-aggregator/core/config"
	"catalog-aggregator/core/database"
	"catalog-aggregator/core/events"
	"catalog-aggregator/core/storage"
	"catalog-aggregator/feature/aggregation"
	"catalog-aggregator/feature/aggregation/normalize"
	"catalog-aggregator/feature/aggregation/reconcile"
	"catalog-aggregator/feature/catalog"
	"catalog-aggregator/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Server.IsValidEnvironment() {
		return nil, fmt.Errorf("invalid server environment %q", cfg.Server.Environment)
	}
	if _, err := cfg.Providers.Endpoints(); err != nil {
		return nil, fmt.Errorf("invalid providers configuration: %w", err)
	}
	return cfg, nil
}

// connectDatabase opens the catalog database and migrates it when auto_migrate is set.
func connectDatabase(cfg database.Config, logg *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	logg.Info("Connected to catalog database", zap.String("driver", cfg.Driver))

	if cfg.AutoMigrate {
		if err := database.Migrate(db, models.All()...); err != nil {
			return nil, err
		}
		logg.Info("Catalog schema migrated")
	}
	return db, nil
}

// pipeline holds the aggregation components shared by start and aggregate.
type pipeline struct {
	registry     *normalize.Registry
	repository   *catalog.Repository
	orchestrator *aggregation.Orchestrator
	scheduler    *aggregation.Scheduler
	publisher    events.Publisher
}

// Close releases the event producer.
func (p *pipeline) Close() error {
	return p.publisher.Close()
}

// buildPipeline wires fetcher, normalizers, reconciliation and store.
// With replay set, payloads come from the archive instead of the providers.
func buildPipeline(ctx context.Context, cfg *config.Config, db *gorm.DB, logg *zap.Logger, replay bool) (*pipeline, error) {
	endpoints, err := cfg.Providers.Endpoints()
	if err != nil {
		return nil, err
	}

	publisher, err := events.NewPublisher(cfg.Events, logg)
	if err != nil {
		return nil, err
	}

	var fetcher aggregation.Fetcher = aggregation.NewHTTPFetcher(cfg.Aggregation)
	opts := []aggregation.Option{
		aggregation.WithPublisher(publisher),
		aggregation.WithStatusTracker(aggregation.NewStatusTracker()),
	}

	if cfg.Aggregation.ArchiveEnabled || replay {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			_ = publisher.Close()
			return nil, err
		}
		archiver := aggregation.NewArchiver(client, cfg.Storage.Bucket, cfg.Aggregation.ArchivePrefix, cfg.Aggregation.ArchiveKeep, logg)

		switch {
		case replay:
			fetcher = aggregation.NewArchiveFetcher(archiver)
			logg.Info("Replaying archived payloads", zap.String("bucket", cfg.Storage.Bucket))
		default:
			if err := archiver.Prepare(ctx, cfg.Storage.Region); err != nil {
				logg.Warn("Payload archive unavailable, archiving disabled", zap.Error(err))
			} else {
				opts = append(opts, aggregation.WithArchiver(archiver))
			}
		}
	}

	registry := normalize.NewDefaultRegistry(logg)
	for _, ep := range endpoints {
		if !registry.Has(ep.ID) {
			logg.Info("Provider uses the generic normalizer", zap.String("provider", ep.ID))
		}
	}

	repo := catalog.NewRepository(db)
	committer := reconcile.NewCommitter(repo, reconcile.NewEngine(nil), logg)
	orchestrator := aggregation.NewOrchestrator(endpoints, fetcher, registry, committer, logg, opts...)

	return &pipeline{
		registry:     registry,
		repository:   repo,
		orchestrator: orchestrator,
		scheduler:    aggregation.NewScheduler(orchestrator, repo, cfg.Aggregation, logg),
		publisher:    publisher,
	}, nil
}
