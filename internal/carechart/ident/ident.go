// Package ident produces the time-ordered identifiers used as primary
// keys and as implicit range bounds across all denormalized projections.
//
// Identifiers are Cassandra v1 time-UUIDs: unique with overwhelming
// probability, sortable by their embedded timestamp, and convertible
// back to it. Min/Max construct the boundary identifiers for an instant,
// which is how calendar-date filters are translated into clustering-key
// ranges.
package ident

import (
	"fmt"
	"time"

	"github.com/gocql/gocql"
)

// ID is the identifier type stored in every projection's key.
type ID = gocql.UUID

// New returns a fresh identifier for the given instant. The timestamp
// part is taken from t; the node/clock-seq part breaks ties between
// identifiers minted within the same 100ns interval.
func New(t time.Time) ID {
	return gocql.UUIDFromTime(t)
}

// Min returns the smallest identifier whose embedded timestamp is t.
// Equivalent to CQL minTimeuuid(t), computed client-side.
func Min(t time.Time) ID {
	return gocql.MinTimeUUID(t)
}

// Max returns the largest identifier whose embedded timestamp is t.
// Equivalent to CQL maxTimeuuid(t).
func Max(t time.Time) ID {
	return gocql.MaxTimeUUID(t)
}

// Timestamp recovers the instant an identifier was minted from.
func Timestamp(id ID) time.Time {
	return id.Time()
}

// Parse reads an identifier from its canonical string form.
func Parse(s string) (ID, error) {
	id, err := gocql.ParseUUID(s)
	if err != nil {
		return ID{}, fmt.Errorf("parse identifier %q: %w", s, err)
	}
	if id.Version() != 1 {
		return ID{}, fmt.Errorf("identifier %q is not time-ordered", s)
	}
	return id, nil
}

// DayRange converts an inclusive calendar-date range into identifier
// bounds [Min(start), Max(end+24h)]. The extra day makes the end date
// inclusive at day granularity: every identifier minted on the end date
// sorts below Max(end+24h).
func DayRange(start, end time.Time) (ID, ID) {
	return Min(start), Max(end.Add(24 * time.Hour))
}

// Less reports whether a sorts before b under the identifier total
// order: embedded timestamp first, then the clock-seq-and-node bytes
// compared as signed bytes, matching the store's timeuuid comparator
// (Min/Max rely on the 0x80.../0x7f... sentinel fillers sorting below
// and above every real identifier).
func Less(a, b ID) bool {
	at, bt := a.Timestamp(), b.Timestamp()
	if at != bt {
		return at < bt
	}
	for i := 8; i < 16; i++ {
		ai, bi := int8(a[i]), int8(b[i])
		if ai != bi {
			return ai < bi
		}
	}
	return false
}
