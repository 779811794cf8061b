package source

import "strings"

var currencySymbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"CAD": "C$",
	"AUD": "A$",
	"JPY": "¥",
}

// CurrencySymbol returns the display symbol for an ISO currency code. Unknown
// codes are returned as-is and an empty code is treated as USD.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}
