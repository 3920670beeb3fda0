// Package models contains the gorm model of agent profiles, shared by every
// feature that shows who owns a record.
package models
