// Package models contains the gorm model of contracts, their lifecycle
// states and the calendar Date type used for signature and outcome days.
package models
