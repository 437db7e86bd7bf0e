package olhovivo

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Direction is the travel direction of a line: 1 runs from the primary terminal
// to the secondary one, 2 the way back.
type Direction int

const (
	DirectionPrimaryToSecondary Direction = 1
	DirectionSecondaryToPrimary Direction = 2
)

// ValidDirection reports whether d is one of the two directions the API knows
func ValidDirection(d Direction) bool {
	return d == DirectionPrimaryToSecondary || d == DirectionSecondaryToPrimary
}

// AllNumeric returns true only if every value is a number, either an integer or
// a numeric string. A single bad value invalidates the whole set.
func AllNumeric(values ...string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, ok := parseNumber(v); !ok {
			return false
		}
	}
	return true
}

func parseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// codeParams validates name/value pairs and turns them into integer query params.
// Nothing is returned unless every value is an in-range number.
func codeParams(pairs ...string) (url.Values, error) {
	params := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		code, reason := parseCode(pairs[i+1])
		if reason != "" {
			return nil, &ValidationError{
				Param:  pairs[i],
				Value:  pairs[i+1],
				Reason: reason,
			}
		}
		params.Set(pairs[i], code)
	}
	return params, nil
}

// parseCode returns v as a decimal integer string. Integers are passed through
// exactly; decimal and exponent forms are truncated. A non-empty reason means v
// was rejected.
func parseCode(v string) (string, string) {
	trimmed := strings.TrimSpace(v)

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err == nil {
		return strconv.FormatInt(n, 10), ""
	}
	if errors.Is(err, strconv.ErrRange) {
		return "", "code out of range"
	}

	f, ok := parseNumber(trimmed)
	if !ok {
		return "", "code must be numeric"
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return "", "code out of range"
	}
	return strconv.FormatInt(int64(f), 10), ""
}
