// Package models contains the gorm models of clients and their contacts.
package models
