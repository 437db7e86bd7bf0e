package filter

import (
	"math"
	"strings"
	"time"
)

const earthRadiusKm = 6371.0

func helperFunctions() map[string]any {
	return map[string]any{
		// Case-insensitive string helpers. contains, startsWith and endsWith are
		// expr operators and cannot be redefined as functions.
		"hasText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,

		// Time helpers
		"now": time.Now,
		"minutesSince": minutesSince,

		// Geo helpers
		"distanceKm": distanceKm,
	}
}

// distanceKm is the great-circle distance between two coordinates
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// minutesSince reads an RFC 3339 timestamp such as a vehicle's UpdatedAt.
// Unparseable values are infinitely old.
func minutesSince(ts string) float64 {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return math.Inf(1)
	}
	return time.Since(t).Minutes()
}
