// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, tunes the pool and pings the server.
// Migrate runs GORM auto-migration for the feature models.
//
// # Schema Inspection
//
// GetTableColumns lists the actual columns of a table so the integrity feature
// can compare them with the columns the clients, contacts and contracts models
// expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "clienti")
package database
