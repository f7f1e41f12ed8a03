package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxWordsAmount is the largest whole amount NumberToWords spells out.
const MaxWordsAmount = 999_999_999

var (
	onesWords = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensWords = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
	}
	hundred  = decimal.NewFromInt(100)
	maxWords = decimal.NewFromInt(MaxWordsAmount)
)

// NumberToWords spells an amount in English, e.g. 4200.50 ->
// "Four Thousand, Two Hundred and 50/100". Zero is "Zero". Whole parts above
// MaxWordsAmount fall back to the plain formatted number. Negative amounts are
// prefixed with "Minus".
func NumberToWords(amount decimal.Decimal) string {
	if amount.Round(2).IsNegative() {
		return "Minus " + NumberToWords(amount.Neg())
	}

	rounded := amount.Round(2)
	if rounded.Truncate(0).GreaterThan(maxWords) {
		return FormatNumber(amount)
	}

	cents := rounded.Mul(hundred).IntPart()
	whole := cents / 100
	fraction := cents % 100
	if whole == 0 && fraction == 0 {
		return "Zero"
	}

	words := wholeToWords(whole)
	if words == "" {
		words = "Zero"
	}
	if fraction > 0 {
		words += fmt.Sprintf(" and %02d/100", fraction)
	}
	return words
}

func wholeToWords(n int64) string {
	var groups []string
	if millions := n / 1_000_000; millions > 0 {
		groups = append(groups, belowThousand(millions)+" Million")
	}
	if thousands := (n / 1000) % 1000; thousands > 0 {
		groups = append(groups, belowThousand(thousands)+" Thousand")
	}
	if rest := n % 1000; rest > 0 {
		groups = append(groups, belowThousand(rest))
	}
	return strings.Join(groups, ", ")
}

func belowThousand(n int64) string {
	hundreds, rest := n/100, n%100
	switch {
	case hundreds > 0 && rest > 0:
		return onesWords[hundreds] + " Hundred and " + belowHundred(rest)
	case hundreds > 0:
		return onesWords[hundreds] + " Hundred"
	default:
		return belowHundred(rest)
	}
}

func belowHundred(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
