// Package config provides configuration management for the catalog aggregator.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Default values are declared next to each field with a
// `default` struct tag and registered by reflection, so every key is reachable
// through AutomaticEnv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, environment)
//   - Database: catalog database connection (mysql, postgres or sqlite)
//   - Storage: S3/MinIO credentials for the raw payload archive
//   - Log: Logging level and format
//   - Aggregation: schedule cadence, staleness threshold, fetch limits, archiving
//   - Providers: upstream provider base URLs, in iteration order
//   - Events: Kafka price-change publisher
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
