package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	priceUnitRe   = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(lakh|lakhs|crore|cr)`)
	displayRe     = regexp.MustCompile(`(?i)^(\d+\.?\d*)\s*(cr|crore|lakh|lakhs)?`)
	trimNumericRe = regexp.MustCompile(`[₹,\s]`)
)

// ExtractPrice finds the first "<number> lakh|crore" pattern in free text and
// returns it as a display string ("₹2.5 Crore", "₹50 Lakh"). Returns "" when
// the text has no numeric+unit pattern.
func ExtractPrice(text string) string {
	match := priceUnitRe.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return ""
	}
	value, unit := match[1], match[2]
	if strings.HasPrefix(unit, "lakh") {
		return fmt.Sprintf("₹%s Lakh", value)
	}
	return fmt.Sprintf("₹%s Crore", value)
}

// NormalizePrice converts a display price string to rupees. Crore multiplies
// by 1e7, lakh by 1e5; a bare number is taken as raw rupees. Unparseable
// input yields 0.
func NormalizePrice(price string) float64 {
	s := strings.ToLower(strings.TrimSpace(trimNumericRe.ReplaceAllString(price, "")))
	if s == "" {
		return 0
	}
	match := displayRe.FindStringSubmatch(s)
	if match == nil {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	switch {
	case strings.HasPrefix(match[2], "cr"):
		return value * 1_00_00_000
	case strings.HasPrefix(match[2], "lakh"):
		return value * 1_00_000
	default:
		return value
	}
}

// PriceBucket maps a display price into a coarse budget bucket used by the
// selection summary. Returns "" for prices that cannot be normalized.
func PriceBucket(price string) string {
	rupees := NormalizePrice(price)
	if rupees <= 0 {
		return ""
	}
	switch {
	case rupees < 50_00_000:
		return "Under ₹50 Lakh"
	case rupees < 1_00_00_000:
		return "₹50 Lakh – ₹1 Crore"
	case rupees < 2_00_00_000:
		return "₹1 – ₹2 Crore"
	default:
		return "Above ₹2 Crore"
	}
}

// FormatRupees renders a rupee amount as a short display string, matching
// the "₹2.5 Crore" form produced by ExtractPrice.
func FormatRupees(rupees float64) string {
	switch {
	case rupees >= 1_00_00_000:
		return fmt.Sprintf("₹%s Crore", trimZeros(rupees/1_00_00_000))
	case rupees >= 1_00_000:
		return fmt.Sprintf("₹%s Lakh", trimZeros(rupees/1_00_000))
	default:
		return fmt.Sprintf("₹%.0f", rupees)
	}
}

// trimZeros renders a value with at most two decimals, without trailing zeros.
func trimZeros(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
