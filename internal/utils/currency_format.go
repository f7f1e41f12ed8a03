package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency describes a currency offered by the wizard.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// DefaultCurrencySymbol is used for any code outside the supported table.
const DefaultCurrencySymbol = "$"

var supportedCurrencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "GHS", Symbol: "GH₵", Name: "Ghanaian Cedi"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "NGN", Symbol: "₦", Name: "Nigerian Naira"},
	{Code: "KES", Symbol: "KSh", Name: "Kenyan Shilling"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
}

var currencySymbols = func() map[string]string {
	m := make(map[string]string, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		m[c.Code] = c.Symbol
	}
	return m
}()

var moneyPrinter = message.NewPrinter(language.English)

// SupportedCurrencies returns the currency table in picker order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupportedCurrency reports whether code is in the currency table.
func IsSupportedCurrency(code string) bool {
	_, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// CurrencySymbol returns the display symbol for code, falling back to "$".
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return sym
	}
	return DefaultCurrencySymbol
}

// FormatMoney renders symbol + amount with two decimals and thousands separators.
// Example: FormatMoney(1234.5, "USD") returns "$1,234.50"; unknown codes use "$".
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	return CurrencySymbol(currencyCode) + FormatNumber(amount)
}

// FormatNumber renders amount with two decimals and thousands separators, no symbol.
// The digits come from the decimal itself, so large amounts keep exact cents.
func FormatNumber(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + groupThousands(whole) + "." + frac
}

// groupThousands inserts separators into a run of digits.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return moneyPrinter.Sprintf("%d", n)
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatWithPrecision formats an amount with the given precision, without grouping.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatPercent renders a rate without trailing zeros ("7.5", "10").
func FormatPercent(rate decimal.Decimal) string {
	return rate.Round(4).String()
}
