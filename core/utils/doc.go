// Package utils provides small string helpers shared by the feature packages:
// sanitizing form values before they reach the database (postal codes,
// province codes, SDI codes) and case-insensitive matching for list filters.
package utils
