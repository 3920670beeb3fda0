// Package integrity provides system health checks for the contract manager.
//
// # Checks Provided
//
//   - Storage: the backup bucket exists and holds the required folders (backups/).
//   - Schema: every table (clienti, clienti_referenti, contratti, profiles) has the
//     columns and types declared by its gorm model.
//
// All checks run concurrently when triggered together.
//
// # HTTP Endpoints
//
// Every endpoint requires an admin actor.
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
package integrity
