package extract

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidPrice is returned for price text that does not parse to a
// finite positive number.
var ErrInvalidPrice = errors.New("extract: invalid price")

// ParsePrice converts listing price text such as "₹1,299." or "Rs. 74,990"
// into a number. Currency symbols, thousands separators and whitespace are
// stripped before parsing.
func ParsePrice(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "INR")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',', unicode.IsSpace(r), unicode.Is(unicode.Sc, r):
			continue
		default:
			b.WriteRune(r)
		}
	}

	// The whole-unit element renders its decimal point ("1,299.").
	cleaned := strings.TrimSuffix(b.String(), ".")
	if cleaned == "" {
		return 0, ErrInvalidPrice
	}
	for _, r := range cleaned {
		if (r < '0' || r > '9') && r != '.' {
			return 0, ErrInvalidPrice
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0, ErrInvalidPrice
	}
	return v, nil
}
