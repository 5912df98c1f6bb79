// Package money formats minor-unit amounts for display.
package money

import (
	"strconv"
	"strings"
)

var noDecimals = map[string]struct{}{
	"BIF": {}, "BYR": {}, "CLF": {}, "DJF": {}, "GNF": {}, "ISK": {},
	"JPY": {}, "KMF": {}, "KRW": {}, "PYG": {}, "RWF": {}, "UGX": {},
	"UYI": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

var threeDecimals = map[string]struct{}{
	"BHD": {}, "IQD": {}, "JOD": {}, "KWD": {}, "LYD": {}, "OMR": {}, "TND": {},
}

// Decimals returns the number of minor-unit digits of an ISO 4217 currency.
func Decimals(currencyCode string) int {
	code := strings.ToUpper(currencyCode)
	if _, ok := noDecimals[code]; ok {
		return 0
	}
	if _, ok := threeDecimals[code]; ok {
		return 3
	}
	return 2
}

// FormatAmount renders an amount given in minor units with grouping commas,
// e.g. 123456 EUR -> "1,234.56".
func FormatAmount(currencyCode string, amount int64) string {
	decimals := Decimals(currencyCode)

	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	fraction := digits[len(digits)-decimals:]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(group(whole))
	if decimals > 0 {
		b.WriteByte('.')
		b.WriteString(fraction)
	}
	return b.String()
}

// FormatAmountForGooglePay is FormatAmount without grouping separators,
// the form Google Pay expects for totalPrice.
func FormatAmountForGooglePay(currencyCode string, amount int64) string {
	return strings.ReplaceAll(FormatAmount(currencyCode, amount), ",", "")
}

func group(whole string) string {
	if len(whole) <= 3 {
		return whole
	}

	var b strings.Builder
	head := len(whole) % 3
	if head > 0 {
		b.WriteString(whole[:head])
	}
	for i := head; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}
