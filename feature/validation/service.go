package validation

import (
	"errors"
	"strings"

	"contract-manager/core/validators"
)

// Kind names an identifier the service can check.
type Kind string

const (
	KindTaxID Kind = "tax-id"
	KindIBAN  Kind = "iban"
)

// ErrUnknownKind is returned for identifiers the service does not know.
var ErrUnknownKind = errors.New("unknown identifier kind")

// Result is the outcome of a single check.
type Result struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// ParseKind maps the names accepted on the command line and in URLs to a Kind.
// "piva" and "partita-iva" are aliases of tax-id.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tax-id", "taxid", "piva", "partita-iva":
		return KindTaxID, nil
	case "iban":
		return KindIBAN, nil
	}
	return "", ErrUnknownKind
}

// Check runs the validator for kind. IBANs are reported in normalized form.
// An empty value is valid, as it is on the forms.
func Check(kind Kind, value string) (Result, error) {
	switch kind {
	case KindTaxID:
		v := strings.TrimSpace(value)
		return Result{Kind: kind, Value: v, Valid: validators.IsValidTaxID(v)}, nil
	case KindIBAN:
		return Result{Kind: kind, Value: validators.NormalizeIBAN(value), Valid: validators.IsValidIBAN(value)}, nil
	}
	return Result{}, ErrUnknownKind
}
