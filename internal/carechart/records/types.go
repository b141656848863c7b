// Package records is the denormalized write/read router: it fans every
// logical mutation out to all projections of its entity and selects the
// right projection for each query pattern.
//
// Fan-out is sequential with no cross-table transaction. A projection
// write that fails after earlier ones succeeded leaves the entity
// partially visible; that is surfaced as a PartialWriteError, never
// rolled back. Concurrent writers race last-writer-wins per projection.
package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/avaldes/carechart/internal/carechart/ident"
)

// Role distinguishes the two kinds of accounts.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// ParseRole case-normalizes a role string into its closed variant.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patient":
		return RolePatient, nil
	case "doctor":
		return RoleDoctor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Status is an appointment's lifecycle state.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus case-normalizes a status string into its closed variant.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return StatusScheduled, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// Account is the irreducible identity: patients and doctors are both
// accounts distinguished only by role.
type Account struct {
	AccountID    string
	Username     string
	FirstName    string
	LastName     string
	Registration ident.ID
	Role         Role
}

// Patient is the profile row backing a patient account.
type Patient struct {
	PatientID string
	FirstName string
	LastName  string
	DOB       time.Time
}

// Doctor is the profile row backing a doctor account.
type Doctor struct {
	DoctorID  string
	FirstName string
	LastName  string
	Specialty string
}

// Appointment references exactly one patient account and one doctor
// account. ID, PatientID and DoctorID are immutable after creation;
// only status and notes may change.
type Appointment struct {
	ID        ident.ID
	Date      time.Time
	PatientID string
	DoctorID  string
	Status    Status
	Notes     string
}

// VitalSign is immutable once written; readings are only ever removed
// by an explicit range delete. Type is free text, stored lower-cased.
type VitalSign struct {
	ID        ident.ID
	AccountID string
	Type      string
	Value     float64
	Date      time.Time
}

// Alert is immutable once written.
type Alert struct {
	ID        ident.ID
	AccountID string
	Date      time.Time
	Type      string
	Message   string
}

// DateRange is an inclusive calendar-date filter. Readers translate it
// into identifier bounds [Min(Start), Max(End+24h)].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Streamed row-or-error values. An error element means the underlying
// lookup failed; a closed channel with no error elements is a valid
// empty result.

type AppointmentResult struct {
	Appointment Appointment
	Err         error
}

type VitalSignResult struct {
	VitalSign VitalSign
	Err       error
}

type AlertResult struct {
	Alert Alert
	Err   error
}
