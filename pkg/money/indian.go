// Package money formatea montos en rupias con la convención numérica india
// (agrupación lakh/crore) y los expresa en palabras para los documentos.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIndian devuelve el monto con dos decimales fijos y la parte entera
// agrupada al estilo indio: los tres últimos dígitos juntos y luego de a dos.
// Ej: 1234567.89 → "12,34,567.89", 999 → "999.00".
func FormatIndian(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	if negative {
		amount = amount.Neg()
	}

	raw := amount.StringFixed(2)
	intPart, decPart, _ := strings.Cut(raw, ".")

	out := groupIndian(intPart) + "." + decPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatIndianFloat es un atajo para valores float64.
func FormatIndianFloat(amount float64) string {
	return FormatIndian(decimal.NewFromFloat(amount))
}

// groupIndian inserta comas en un entero sin signo: primer grupo de 3, resto de a 2.
func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if remaining != "" {
		result = remaining + "," + result
	}
	return result
}
