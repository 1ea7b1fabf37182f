package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount parses a numeric form field into a non-negative float. The
// field name is only used to build the rejection message.
func ParseAmount(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return f, nil
}

// ParseOptionalAmount maps an empty field to nil rather than zero, so the
// payload carries null for "not set" instead of an empty string or 0.
func ParseOptionalAmount(field, value string) (*float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	f, err := ParseAmount(field, value)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseOptionalCount is ParseOptionalAmount for integer fields (max_uses,
// stock counters). Empty means unlimited/unset and is transmitted as null.
func ParseOptionalCount(field, value string) (*int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", field)
	}
	if n < 0 {
		return nil, fmt.Errorf("%s must not be negative", field)
	}
	return &n, nil
}

// FormatAmount renders a float back into a form field, trimming the noise
// a %f would add.
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatCount renders an integer counter back into a form field.
func FormatCount(n int) string {
	return strconv.Itoa(n)
}

// ParseCount is the required-field variant of ParseOptionalCount.
func ParseCount(field, value string) (int, error) {
	n, err := ParseOptionalCount(field, value)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, fmt.Errorf("%s is required", field)
	}
	return *n, nil
}
