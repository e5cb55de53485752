package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"catalog-aggregator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the aggregate command
	aggregateJSON   bool
	aggregateReplay bool
)

// aggregateCmd runs a single aggregation pass and exits.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Run one aggregation pass over every configured provider",
	Long: `Fetches, normalizes and reconciles every configured provider once,
then marks stale products.

Examples:
  # Aggregate from the live providers
  aggregate

  # Print the per-provider results as JSON
  aggregate --json

  # Re-run reconciliation over the newest archived payloads
  aggregate --replay`,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().BoolVar(&aggregateJSON, "json", false, "Print results as JSON")
	aggregateCmd.Flags().BoolVar(&aggregateReplay, "replay", false, "Read payloads from the archive instead of the providers")
	RootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}
	defer logg.Sync()

	db, err := connectDatabase(cfg.Database, logg)
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, cfg, db, logg, aggregateReplay)
	if err != nil {
		return err
	}
	defer p.Close()

	results, err := p.scheduler.TriggerNow(ctx)
	if err != nil {
		return err
	}

	if aggregateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	failed := 0
	for _, r := range results {
		if r.Success {
			logg.Info("Provider succeeded", zap.String("provider", r.ProviderID), zap.Int("count", *r.Count))
		} else {
			failed++
			logg.Warn("Provider failed", zap.String("provider", r.ProviderID), zap.String("error", r.Error))
		}
	}
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("all %d providers failed", failed)
	}
	return nil
}
