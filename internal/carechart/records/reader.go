package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/avaldes/carechart/internal/carechart/ident"
	"github.com/avaldes/carechart/internal/carechart/logger"
	"github.com/avaldes/carechart/internal/carechart/store"
)

// alertLookback bounds the alert history returned when no range is
// given: roughly the last two years.
const alertLookback = 760 * 24 * time.Hour

// streamBuffer sizes the result channels so the row producer and the
// consumer can work independently.
const streamBuffer = 100

// epoch is the "beginning of time" lower bound applied when a query
// carries no date range.
var epoch = time.Unix(0, 0).UTC()

// Reader selects the projection matching each query pattern and
// translates optional date ranges into identifier bounds. Results
// stream in the projections' descending-identifier clustering order.
type Reader struct {
	s   store.Session
	now func() time.Time
}

func NewReader(s store.Session) *Reader {
	return &Reader{s: s, now: time.Now}
}

// bounds translates an optional inclusive date range into identifier
// bounds. Without a range only the epoch lower bound applies.
func bounds(dr *DateRange) (lo ident.ID, hi ident.ID, ranged bool) {
	if dr == nil {
		return ident.Min(epoch), ident.ID{}, false
	}
	lo, hi = ident.DayRange(dr.Start, dr.End)
	return lo, hi, true
}

// Appointments selects the projection from the keys supplied: patient
// only reads by_patient, doctor only by_doctor, both by_pd. At least
// one key is required.
func (r *Reader) Appointments(patientID, doctorID string, dr *DateRange) <-chan AppointmentResult {
	ch := make(chan AppointmentResult, streamBuffer)

	var stmt string
	var args []any
	lo, hi, ranged := bounds(dr)
	switch {
	case patientID != "" && doctorID != "":
		stmt, args = selectAppointmentsByPD, []any{patientID, doctorID, lo}
		if ranged {
			stmt, args = selectAppointmentsByPDRange, []any{patientID, doctorID, lo, hi}
		}
	case patientID != "":
		stmt, args = selectAppointmentsByPatient, []any{patientID, lo}
		if ranged {
			stmt, args = selectAppointmentsByPatientRange, []any{patientID, lo, hi}
		}
	case doctorID != "":
		stmt, args = selectAppointmentsByDoctor, []any{doctorID, lo}
		if ranged {
			stmt, args = selectAppointmentsByDoctorRange, []any{doctorID, lo, hi}
		}
	default:
		ch <- AppointmentResult{Err: fmt.Errorf("appointments query needs a patient or doctor id")}
		close(ch)
		return ch
	}

	go func() {
		defer close(ch)
		iter := r.s.Query(stmt, args...)
		for {
			var (
				a      Appointment
				status string
			)
			if !iter.Scan(&a.ID, &a.Date, &a.PatientID, &a.DoctorID, &status, &a.Notes) {
				break
			}
			a.Status = Status(status)
			ch <- AppointmentResult{Appointment: a}
		}
		if err := iter.Close(); err != nil {
			ch <- AppointmentResult{Err: fmt.Errorf("read appointments: %w", err)}
		}
	}()
	return ch
}

// VitalSigns reads an account's readings, optionally pinned to one
// type. With a type the by-account-type projection serves the query;
// without it the by-account projection does.
func (r *Reader) VitalSigns(accountID, vitalType string, dr *DateRange) <-chan VitalSignResult {
	ch := make(chan VitalSignResult, streamBuffer)

	var stmt string
	var args []any
	lo, hi, ranged := bounds(dr)
	if vitalType != "" {
		vitalType = strings.ToLower(strings.TrimSpace(vitalType))
		stmt, args = selectVitalSignsByType, []any{accountID, vitalType, lo}
		if ranged {
			stmt, args = selectVitalSignsByTypeRange, []any{accountID, vitalType, lo, hi}
		}
	} else {
		stmt, args = selectVitalSignsByAccount, []any{accountID, lo}
		if ranged {
			stmt, args = selectVitalSignsByAccountRange, []any{accountID, lo, hi}
		}
	}

	go func() {
		defer close(ch)
		iter := r.s.Query(stmt, args...)
		for {
			var v VitalSign
			if !iter.Scan(&v.ID, &v.AccountID, &v.Type, &v.Value, &v.Date) {
				break
			}
			ch <- VitalSignResult{VitalSign: v}
		}
		if err := iter.Close(); err != nil {
			ch <- VitalSignResult{Err: fmt.Errorf("read vital signs: %w", err)}
		}
	}()
	return ch
}

// Alerts reads an account's alert history from roughly two years back.
func (r *Reader) Alerts(accountID string) <-chan AlertResult {
	ch := make(chan AlertResult, streamBuffer)
	lo := ident.Min(r.now().Add(-alertLookback))

	go func() {
		defer close(ch)
		iter := r.s.Query(selectAlertsByAccount, accountID, lo)
		for {
			var a Alert
			if !iter.Scan(&a.ID, &a.AccountID, &a.Date, &a.Type, &a.Message) {
				break
			}
			ch <- AlertResult{Alert: a}
		}
		if err := iter.Close(); err != nil {
			ch <- AlertResult{Err: fmt.Errorf("read alerts: %w", err)}
		}
	}()
	return ch
}

// Account looks up an account by id. A missing account is an empty
// result (found=false, nil error), never an error.
func (r *Reader) Account(accountID string) (Account, bool, error) {
	iter := r.s.Query(selectAccount, accountID)
	var (
		acc  Account
		role string
	)
	found := iter.Scan(&acc.AccountID, &acc.Username, &acc.FirstName, &acc.LastName, &acc.Registration, &role)
	if err := iter.Close(); err != nil {
		return Account{}, false, fmt.Errorf("read account %s: %w", accountID, err)
	}
	if !found {
		logger.L().Debugw("Account not found", "account_id", accountID)
		return Account{}, false, nil
	}
	acc.Role = Role(role)
	return acc, true, nil
}
