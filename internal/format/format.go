package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Catalog prices are Colombian pesos with no minor units in practice.
var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// Pesos formats an amount with es-CO thousands separators.
// Example: Pesos(5000000) => "$5.000.000"
func Pesos(amount int64) string {
	return copPrinter.Sprintf("$%v", number.Decimal(amount))
}

// ParsePrice normalizes a locale-formatted price string to whole pesos.
// Accepts "2.500.000", "$ 2.500.000", "1.234,56" (comma decimal) and plain
// numeric text. Unparsable input yields 0.
func ParsePrice(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '.':
			// thousands separator, dropped
		case r == ',':
			b.WriteRune('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(v))
}
