package validators

// TaxIDLength is the number of digits of a partita IVA.
const TaxIDLength = 11

// IsValidTaxID reports whether value is an acceptable partita IVA.
// Digits in even positions (1-based) are doubled, folding values above 9,
// and the total must be a multiple of 10.
func IsValidTaxID(value string) bool {
	if value == "" {
		return true
	}
	if len(value) != TaxIDLength {
		return false
	}

	sum := 0
	for i := 0; i < TaxIDLength; i++ {
		c := value[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if (i+1)%2 == 0 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
	}
	return sum%10 == 0
}
