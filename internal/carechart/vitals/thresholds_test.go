package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAbnormal(t *testing.T) {
	tests := []struct {
		name      string
		vitalType string
		value     float64
		expected  bool
	}{
		{name: "blood_pressure_low", vitalType: "blood pressure", value: 89.9, expected: true},
		{name: "blood_pressure_low_edge", vitalType: "blood pressure", value: 90, expected: false},
		{name: "blood_pressure_normal", vitalType: "blood pressure", value: 120, expected: false},
		{name: "blood_pressure_high_edge", vitalType: "blood pressure", value: 140, expected: false},
		{name: "blood_pressure_high", vitalType: "blood pressure", value: 140.1, expected: true},

		{name: "heart_rate_low", vitalType: "heart rate", value: 59, expected: true},
		{name: "heart_rate_normal", vitalType: "heart rate", value: 75, expected: false},
		{name: "heart_rate_high", vitalType: "heart rate", value: 150, expected: true},

		{name: "oxygenation_low", vitalType: "oxygenation", value: 94.9, expected: true},
		{name: "oxygenation_normal", vitalType: "oxygenation", value: 98, expected: false},
		{name: "oxygenation_above_scale", vitalType: "oxygenation", value: 100.5, expected: true},

		{name: "temperature_low", vitalType: "temperature", value: 36.0, expected: true},
		{name: "temperature_normal", vitalType: "temperature", value: 36.8, expected: false},
		{name: "temperature_high", vitalType: "temperature", value: 38.5, expected: true},

		{name: "case_insensitive", vitalType: "Heart Rate", value: 150, expected: true},
		{name: "surrounding_whitespace", vitalType: " temperature ", value: 40, expected: true},

		{name: "unknown_type_steps", vitalType: "steps", value: 1e9, expected: false},
		{name: "unknown_type_free_text", vitalType: "mood", value: -5, expected: false},
		{name: "empty_type", vitalType: "", value: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAbnormal(tt.vitalType, tt.value))
			// pure and deterministic: a second call agrees
			assert.Equal(t, tt.expected, IsAbnormal(tt.vitalType, tt.value))
		})
	}
}

func TestKnownTypesCoverEveryThresholdType(t *testing.T) {
	known := map[string]bool{}
	for _, vt := range KnownTypes {
		known[vt] = true
	}
	for vt := range thresholds {
		assert.True(t, known[vt], "threshold type %q must be range-deletable", vt)
	}
}

func TestNormalRange(t *testing.T) {
	r, ok := NormalRange("BLOOD PRESSURE")
	assert.True(t, ok)
	assert.Equal(t, Range{Low: 90, High: 140}, r)

	_, ok = NormalRange("steps")
	assert.False(t, ok)
}
