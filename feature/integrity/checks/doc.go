// Package checks holds the individual integrity checks: the bucket folder
// structure and the database schema compared with the gorm models.
package checks
