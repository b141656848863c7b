package ident

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsMonotonicWithTime(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	prev := New(base)
	for i := 1; i <= 100; i++ {
		next := New(base.Add(time.Duration(i) * time.Second))
		assert.True(t, Less(prev, next), "identifier minted later must sort later")
		prev = next
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
	}{
		{name: "past", at: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "with_time_of_day", at: time.Date(2024, 3, 1, 10, 30, 45, 0, time.UTC)},
		{name: "recent", at: time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := New(tt.at)
			// timeuuid resolution is 100ns; at whole-second inputs the
			// round trip is exact
			assert.True(t, Timestamp(id).Equal(tt.at),
				"got %v want %v", Timestamp(id), tt.at)
		})
	}
}

func TestMinMaxBracketNewForSameInstant(t *testing.T) {
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	id := New(at)
	lo := Min(at)
	hi := Max(at)

	assert.False(t, Less(id, lo), "Min must not exceed any id minted at the same instant")
	assert.False(t, Less(hi, id), "Max must not fall below any id minted at the same instant")
}

func TestDayRangeCoversWholeEndDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	lo, hi := DayRange(start, end)

	// a reading late on the end date still falls inside the range
	lateOnEndDate := New(time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC))
	assert.False(t, Less(lateOnEndDate, lo))
	assert.False(t, Less(hi, lateOnEndDate))

	// the day after the end date falls outside
	dayAfter := New(time.Date(2024, 1, 3, 0, 0, 1, 0, time.UTC))
	assert.True(t, Less(hi, dayAfter))

	// a reading before the start date falls outside
	before := New(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.True(t, Less(before, lo))
}

func TestParse(t *testing.T) {
	id := New(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = Parse("not-an-identifier")
	assert.Error(t, err)

	// random (v4) UUIDs carry no timestamp and are rejected
	_, err = Parse("9f86d081-884c-4d63-a470-317b95f33bbf")
	assert.Error(t, err)
}

func TestLessBreaksTiesDeterministically(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a := New(at)
	b := New(at)

	if a != b {
		assert.NotEqual(t, Less(a, b), Less(b, a), "tie-break must impose a strict order")
	}
}
