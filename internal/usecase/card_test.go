package usecase

import "testing"

func TestValidateCardNumber(t *testing.T) {
	valid := []string{
		"4111111111111111",
		"2718281828459045",
		"6011111111111117",
		"378282246310005",
	}
	for _, number := range valid {
		if !ValidateCardNumber(number) {
			t.Fatalf("expected number %s to be valid", number)
		}
	}

	invalid := []string{"", "79927398713", "abcdefabcdefab", "4111111111111112", "41111111111111111111"}
	for _, number := range invalid {
		if ValidateCardNumber(number) {
			t.Fatalf("expected number %s to be invalid", number)
		}
	}
}

func TestNormalizeCardNumber(t *testing.T) {
	if got := NormalizeCardNumber("4111 1111-1111 1111"); got != "4111111111111111" {
		t.Fatalf("unexpected normalized number %q", got)
	}
}

func TestCardBrand(t *testing.T) {
	cases := map[string]string{
		"4111111111111111": "visa",
		"5555555555554444": "mastercard",
		"2221000000000009": "mastercard",
		"378282246310005":  "amex",
		"6011111111111117": "discover",
		"9999999999999995": "unknown",
	}
	for number, want := range cases {
		if got := CardBrand(number); got != want {
			t.Fatalf("brand of %s: expected %s, got %s", number, want, got)
		}
	}
}
