package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	crore    int64 = 10_000_000
	lakh     int64 = 100_000
	thousand int64 = 1_000
)

var hundredDecimal = decimal.NewFromInt(100)

// AmountInWords expresa un total en rupias con la convención india.
// Ej: 885 → "Eight Hundred and Eighty Five Rupees Only",
// 1250.50 → "One Thousand Two Hundred and Fifty Rupees and Fifty Paise Only".
// Cero (o un monto que redondea a cero) → "Zero Rupees Only".
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "Minus " + AmountInWords(amount.Neg())
	}

	amount = amount.Round(2)
	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(hundredDecimal).IntPart()

	r := rupees.IntPart()
	if r == 0 && paise == 0 {
		return "Zero Rupees Only"
	}

	var b strings.Builder
	if r == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(IndianWords(r))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(IndianWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// IndianWords convierte un entero positivo en palabras (Crore, Lakh, Thousand, Hundred).
// Los crores mayores a 99 se expresan recursivamente ("One Hundred Crore").
func IndianWords(n int64) string {
	if n <= 0 {
		return ""
	}

	var parts []string

	if n >= crore {
		parts = append(parts, IndianWords(n/crore)+" Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, under100(n/lakh)+" Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, under100(n/thousand)+" Thousand")
		n %= thousand
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+under100(n))
		} else {
			parts = append(parts, under100(n))
		}
	}

	return strings.Join(parts, " ")
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	out := tens[n/10]
	if n%10 != 0 {
		out += " " + ones[n%10]
	}
	return out
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
