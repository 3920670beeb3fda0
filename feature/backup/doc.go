// Package backup exports JSON snapshots of the database to the object store.
//
// A snapshot holds every profile, every client with its contacts and every
// contract. It is written to <prefix>/<UTC timestamp>.json (for example
// backups/20260314T093000.000Z.json), after which only the newest BACKUP_KEEP
// snapshots are kept. Exports requested while one is running join it
// instead of starting another.
//
// # HTTP Endpoints
//
// Every endpoint requires an admin actor.
//
//   - POST /backup : Writes a snapshot.
//   - GET /backup : Lists snapshots, newest first.
package backup
