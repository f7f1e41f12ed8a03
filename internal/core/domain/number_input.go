package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberInput is a loosely typed numeric value as typed into the wizard. It accepts a JSON
// number or a JSON string and is coerced on use; unparseable input coerces to zero.
type NumberInput string

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// Num is a convenience constructor for patches built in code.
func Num(value string) *NumberInput {
	n := NumberInput(value)
	return &n
}

// UnmarshalJSON keeps the raw text of numbers and strings. Other JSON kinds coerce to zero.
func (n *NumberInput) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "" || raw == "null":
		*n = ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = ""
			return nil
		}
		*n = NumberInput(s)
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		*n = NumberInput(raw)
	default:
		*n = ""
	}
	return nil
}

// Int parses the leading integer, truncating any fractional part ("3.7" -> 3).
// Values out of int64 range saturate.
func (n NumberInput) Int() int64 {
	s := strings.TrimSpace(string(n))
	if f := floatPrefix.FindString(s); f != "" && strings.ContainsAny(f, "eE") {
		// exponent notation: go through decimal so "1e3" is 1000, not 1
		return n.Decimal().Truncate(0).IntPart()
	}
	m := intPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		if strings.HasPrefix(m, "-") {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return v
}

// Decimal parses the leading decimal literal ("12.5kg" -> 12.5). Invalid input yields zero.
func (n NumberInput) Decimal() decimal.Decimal {
	m := floatPrefix.FindString(strings.TrimSpace(string(n)))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}
