package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a rupee amount that may arrive as a plain number
// ("5000"), a decimal ("5000.00") or a display string with Indian digit
// grouping ("5,000"). Returns whole rupees; unparseable input yields 0.
func ParseAmount(raw string) int64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	return int64(math.Round(value))
}

// FormatINR formats whole rupees with Indian digit grouping:
// the last three digits form one group, every two digits after that
// form another (100000 -> "1,00,000").
func FormatINR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]

		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(groups, ",") + "," + tail
	}

	if negative {
		return "-" + digits
	}
	return digits
}

// FormatRupees renders an amount for display, e.g. "₹1,00,000".
func FormatRupees(amount int64) string {
	return fmt.Sprintf("₹%s", FormatINR(amount))
}

// Savings returns the discount between an original and an offer price.
// Never negative; zero means no savings line is shown.
func Savings(originalPrice, offerPrice int64) int64 {
	if originalPrice > offerPrice {
		return originalPrice - offerPrice
	}
	return 0
}

// PercentDiscount applies a percentage discount to an amount, rounding
// to the nearest rupee.
func PercentDiscount(amount int64, percent float64) int64 {
	return int64(math.Round(float64(amount) * percent / 100))
}
