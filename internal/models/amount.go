package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value in whole rupees. The upstream API is loose
// about number encoding: prices arrive as JSON numbers, decimal strings
// or display strings with Indian digit grouping ("5,000"). Amount
// accepts all of them and always marshals back as a plain number.
type Amount int64

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = 0
		return nil
	}

	// Plain number
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = Amount(math.Round(num))
		return nil
	}

	// String form, possibly comma grouped
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse amount %s: %w", string(data), err)
	}

	cleaned := strings.ReplaceAll(strings.TrimSpace(str), ",", "")
	if cleaned == "" {
		*a = 0
		return nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fmt.Errorf("failed to parse amount %q: %w", str, err)
	}

	*a = Amount(math.Round(value))
	return nil
}

// MarshalJSON implements json.Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(a), 10)), nil
}

// Int64 returns the amount as whole rupees
func (a Amount) Int64() int64 {
	return int64(a)
}

// Paise returns the amount in paise, the unit the payment gateway expects
func (a Amount) Paise() int64 {
	return int64(a) * 100
}
