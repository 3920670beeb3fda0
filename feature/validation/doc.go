// Package validation exposes the identifier validators over HTTP so forms can
// check a partita IVA or an IBAN while it is typed.
//
// # HTTP Endpoints
//
//   - GET /validate/tax-id/:value
//   - GET /validate/iban/:value
//
// Both answer {"kind", "value", "valid"}; IBANs come back normalized.
package validation
