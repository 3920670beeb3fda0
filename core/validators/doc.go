// Package validators checks the identifiers entered on client and contract
// records before anything is written to the store.
//
// Both validators are pure: they never return errors and never panic, a
// malformed value simply yields false. An empty value is reported as valid
// because both fields are optional; callers that require a value must check
// for emptiness themselves.
//
//   - IsValidTaxID: Italian VAT number (partita IVA), 11 digits with an
//     alternating-double mod 10 checksum.
//   - IsValidIBAN: 27-character bank account identifier checked with the
//     ISO 7064 MOD 97-10 rule.
//
// ValidationError collects the per-field rejections a form produces from
// these checks; it wraps ErrValidation.
package validators
