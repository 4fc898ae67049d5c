package usecase

import (
	"strings"
	"unicode"
)

const (
	minCardDigits = 12
	maxCardDigits = 19
)

// NormalizeCardNumber drops spaces and dashes used for grouping.
func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

// ValidateCardNumber checks card number length and Luhn checksum.
func ValidateCardNumber(number string) bool {
	if len(number) < minCardDigits || len(number) > maxCardDigits {
		return false
	}

	var sum int
	var alt bool
	for i := len(number) - 1; i >= 0; i-- {
		r := rune(number[i])
		if !unicode.IsDigit(r) {
			return false
		}
		digit := int(r - '0')
		if alt {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alt = !alt
	}

	return sum%10 == 0
}

// CardBrand guesses the card network from its prefix.
func CardBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "amex"
	case strings.HasPrefix(number, "6011"), strings.HasPrefix(number, "65"):
		return "discover"
	case len(number) >= 2 && number[0] == '5' && number[1] >= '1' && number[1] <= '5':
		return "mastercard"
	case len(number) >= 4 && number[:4] >= "2221" && number[:4] <= "2720":
		return "mastercard"
	default:
		return "unknown"
	}
}
