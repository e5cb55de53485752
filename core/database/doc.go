// Package database handles database connections and schema inspection.
//
// It wraps GORM to open the catalog database with one of three drivers
// selected by configuration: MySQL (default), PostgreSQL and SQLite. SQLite
// is used in-memory by the test suites.
//
// # Connect
//
// Connect builds the driver DSN, applies pool settings and pings the database
// within the configured timeout. Migrate runs auto-migration for the catalog
// models when database.auto_migrate is enabled.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns using the dialect's native
// introspection (SHOW COLUMNS, information_schema or PRAGMA table_info).
// The readiness check uses MissingColumns to verify the catalog schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "products", []string{"id", "price"})
package database
