package cmd

import (
	"catalog-aggregator/core/database"
	"catalog-aggregator/core/logger"
	"catalog-aggregator/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the catalog schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()

		cfg.Database.AutoMigrate = false
		db, err := connectDatabase(cfg.Database, logg)
		if err != nil {
			return err
		}

		if err := database.Migrate(db, models.All()...); err != nil {
			return err
		}

		for table, columns := range models.RequiredColumns() {
			missing, err := database.MissingColumns(db, table, columns)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				logg.Warn("Table is missing columns after migration", zap.String("table", table), zap.Strings("columns", missing))
			}
		}

		logg.Info("Catalog schema is up to date", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
