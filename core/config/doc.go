// Package config provides configuration management for the contract manager.
//
// Settings come from environment variables, optionally seeded from a .env
// file. Every field carries a `mapstructure` key and a `default` tag; nested
// keys map to upper-case env names with dots replaced by underscores.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, environment
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials and the backup bucket
//   - Log: level and format
//   - Clients: the contact delete-failure policy (warn or abort)
//   - Backup: snapshot prefix and retention
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Clients.OnContactDeleteFailure)
package config
