// utils/money.go
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNotANumber = errors.New("value does not contain a numeric amount")

// ParseCurrency converts a pt-BR money string into a float amount.
// "R$ 1.234,56" -> 1234.56, "120,00" -> 120, "800" -> 800.
// Free-text prices like "Sob consulta" return ErrNotANumber.
func ParseCurrency(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	// "." is the thousands separator, "," the decimal mark
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, ErrNotANumber
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return v, nil
}

// FormatMoneyInput renders raw keystroke digits as a BRL amount the way the
// money inputs mask them: digits are cents. "12345" -> "R$ 123,45",
// "5" -> "R$ 0,05". Non-digits are ignored; empty input stays empty.
func FormatMoneyInput(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	cents, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return ""
	}
	return FormatBRL(float64(cents) / 100)
}

// FormatBRL formats an amount for display: 1234.5 -> "R$ 1.234,50".
func FormatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	intPart := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(intPart, 10)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), frac)
}
