package utils

import (
	"fmt"
	"math"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatMoney formata um valor monetário com separador de milhar,
// ex.: 14155.56 -> "$14,155.56"
func FormatMoney(value float64) string {
	rounded := RoundWithTwoDecimalPlace(value)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	text := fmt.Sprintf("%.2f", rounded)
	parts := strings.SplitN(text, ".", 2)

	intPart := parts[0]
	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}

	return fmt.Sprintf("%s$%s.%s", sign, grouped.String(), parts[1])
}
