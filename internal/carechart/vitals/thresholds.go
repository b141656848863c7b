// Package vitals holds the fixed clinical rule table deciding whether a
// vital-sign reading is abnormal and must fan out an alert.
package vitals

import "strings"

// Range is the closed interval of clinically normal values for a type.
type Range struct {
	Low  float64
	High float64
}

// thresholds maps a case-normalized vital-sign type to its normal range.
// Types missing from the table never trigger an alert.
var thresholds = map[string]Range{
	"blood pressure": {Low: 90, High: 140},
	"heart rate":     {Low: 60, High: 100},
	"oxygenation":    {Low: 95, High: 100},
	"temperature":    {Low: 36.1, High: 37.2},
}

// KnownTypes is the full enumerated list of vital-sign types the system
// writes. Range deletes on the by-account-type projection must pin the
// type column, so they iterate this list.
var KnownTypes = []string{
	"blood pressure",
	"heart rate",
	"oxygenation",
	"temperature",
	"steps",
	"weight",
	"height",
}

// IsAbnormal reports whether a reading falls outside the normal range
// for its type. Matching is case-insensitive; unknown types are never
// abnormal. Pure and deterministic.
func IsAbnormal(vitalType string, value float64) bool {
	r, ok := thresholds[strings.ToLower(strings.TrimSpace(vitalType))]
	if !ok {
		return false
	}
	return value < r.Low || value > r.High
}

// NormalRange returns the normal range for a type, if one is defined.
func NormalRange(vitalType string) (Range, bool) {
	r, ok := thresholds[strings.ToLower(strings.TrimSpace(vitalType))]
	return r, ok
}
