// README: Closed currency enum with a single canonicalization boundary.
package types

import "strings"

// Currency codes accepted by the system. Persistence and API layers call
// CanonicalCurrency once on the way in; everything downstream compares
// exact values and never branches on casing.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyGEL = "GEL"
)

// DefaultCurrency is assumed when reference data carries no explicit code.
const DefaultCurrency = CurrencyEUR

var knownCurrencies = map[string]struct{}{
	CurrencyUSD: {},
	CurrencyEUR: {},
	CurrencyGBP: {},
	CurrencyGEL: {},
}

// CanonicalCurrency uppercases and validates a currency code. The second
// return value reports whether the code is one the system knows.
func CanonicalCurrency(code string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return DefaultCurrency, true
	}
	_, ok := knownCurrencies[c]
	return c, ok
}
