package validators

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// IBANLength is the normalized length of an accepted IBAN.
	IBANLength = 27
	// mod97Block is the prefix size reduced per step; nine digits plus a two
	// digit remainder always fit in an int.
	mod97Block = 9
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z][0-9]{10}[A-Z0-9]{12}$`)

// NormalizeIBAN strips every whitespace character and uppercases the rest.
func NormalizeIBAN(value string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value))
}

// IsValidIBAN reports whether value is an acceptable bank account identifier.
// The value is normalized first, so spacing and letter case do not matter.
func IsValidIBAN(value string) bool {
	if value == "" {
		return true
	}

	iban := NormalizeIBAN(value)
	if !ibanPattern.MatchString(iban) {
		return false
	}

	rearranged := iban[4:] + iban[:4]

	var numeral strings.Builder
	numeral.Grow(IBANLength * 2)
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		if c >= 'A' && c <= 'Z' {
			numeral.WriteString(strconv.Itoa(int(c) - 55))
			continue
		}
		numeral.WriteByte(c)
	}

	return Mod97(numeral.String()) == 1
}

// Mod97 returns numeral mod 97 for an arbitrarily long string of decimal
// digits. The leading block of up to nine digits is reduced and its remainder
// is written back in front of the rest until at most two digits remain.
// It returns -1 if numeral is empty or contains anything other than digits.
func Mod97(numeral string) int {
	if numeral == "" {
		return -1
	}
	for i := 0; i < len(numeral); i++ {
		if numeral[i] < '0' || numeral[i] > '9' {
			return -1
		}
	}

	remainder := numeral
	for len(remainder) > 2 {
		size := min(mod97Block, len(remainder))
		block, _ := strconv.Atoi(remainder[:size])
		remainder = strconv.Itoa(block%97) + remainder[size:]
	}

	n, _ := strconv.Atoi(remainder)
	return n % 97
}
