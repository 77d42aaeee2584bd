package ui

import (
	"github.com/shopspring/decimal"
)

// Amount renders a signed balance or movement amount followed by its
// currency code. Zero is muted, negatives are red and positives green.
func Amount(d decimal.Decimal, currency string) string {
	text := d.String()
	if currency != "" {
		text += " " + currency
	}

	switch d.Sign() {
	case -1:
		return Negative.Sprint(text)
	case 1:
		return Positive.Sprint(text)
	default:
		if noColor() {
			return text
		}
		return Muted.color.Sprint(text)
	}
}
