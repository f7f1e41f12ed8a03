package utils

import (
	"sort"
	"strings"
	"unicode"
)

// Country is an entry of the dial code table.
type Country struct {
	Name     string `json:"name"`
	ISO      string `json:"iso"`
	DialCode string `json:"dialCode"`
}

var countries = []Country{
	{Name: "Ghana", ISO: "GH", DialCode: "+233"},
	{Name: "Nigeria", ISO: "NG", DialCode: "+234"},
	{Name: "Kenya", ISO: "KE", DialCode: "+254"},
	{Name: "South Africa", ISO: "ZA", DialCode: "+27"},
	{Name: "Togo", ISO: "TG", DialCode: "+228"},
	{Name: "Cote d'Ivoire", ISO: "CI", DialCode: "+225"},
	{Name: "Uganda", ISO: "UG", DialCode: "+256"},
	{Name: "Tanzania", ISO: "TZ", DialCode: "+255"},
	{Name: "Rwanda", ISO: "RW", DialCode: "+250"},
	{Name: "United States", ISO: "US", DialCode: "+1"},
	{Name: "Canada", ISO: "CA", DialCode: "+1"},
	{Name: "United Kingdom", ISO: "GB", DialCode: "+44"},
	{Name: "Ireland", ISO: "IE", DialCode: "+353"},
	{Name: "Germany", ISO: "DE", DialCode: "+49"},
	{Name: "France", ISO: "FR", DialCode: "+33"},
	{Name: "Netherlands", ISO: "NL", DialCode: "+31"},
	{Name: "Spain", ISO: "ES", DialCode: "+34"},
	{Name: "Italy", ISO: "IT", DialCode: "+39"},
	{Name: "Australia", ISO: "AU", DialCode: "+61"},
	{Name: "India", ISO: "IN", DialCode: "+91"},
}

// dial codes sorted longest first so prefix matching prefers "+233" over "+2".
var dialCodes = func() []string {
	seen := map[string]bool{}
	var codes []string
	for _, c := range countries {
		if !seen[c.DialCode] {
			seen[c.DialCode] = true
			codes = append(codes, c.DialCode)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return len(codes[i]) > len(codes[j]) })
	return codes
}()

// Countries returns the dial code table.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// DialCodeForCountry looks a country up by name or ISO code. Unknown countries return "".
func DialCodeForCountry(country string) string {
	key := strings.TrimSpace(country)
	for _, c := range countries {
		if strings.EqualFold(c.Name, key) || strings.EqualFold(c.ISO, key) {
			return c.DialCode
		}
	}
	return ""
}

// SplitPhone separates an absolute number ("+233 24 123 4567") into dial code and local part.
// Numbers without a recognised international prefix come back with an empty code.
func SplitPhone(full string) (code, local string) {
	compact := compactPhone(full)
	if !strings.HasPrefix(compact, "+") {
		return "", compact
	}
	for _, dc := range dialCodes {
		if strings.HasPrefix(compact, dc) {
			return dc, strings.TrimPrefix(compact, dc)
		}
	}
	return "", compact
}

// JoinPhone builds the absolute number stored by the backend. A local part with a leading
// trunk zero drops it ("+233" + "0241234567" -> "+233241234567").
func JoinPhone(code, local string) string {
	local = compactPhone(local)
	if local == "" {
		return ""
	}
	if strings.HasPrefix(local, "+") || code == "" {
		return local
	}
	return code + strings.TrimPrefix(local, "0")
}

func compactPhone(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
