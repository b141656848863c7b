package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/avaldes/carechart/internal/carechart/ident"
	"github.com/avaldes/carechart/internal/carechart/logger"
	"github.com/avaldes/carechart/internal/carechart/store"
	"github.com/avaldes/carechart/internal/carechart/vitals"
)

// deleteDefaultLookback is how far back a vital-sign range delete
// reaches when no start date is given.
const deleteDefaultLookback = 30 * 24 * time.Hour

// ReferenceValidator checks that a referenced account exists before a
// write. The access layer itself never validates references (a dangling
// reference is written, not rejected); a deployment that wants stricter
// behavior plugs one in.
type ReferenceValidator func(accountID string) error

// Writer fans each logical mutation out to every projection of its
// entity, sequentially and without a cross-table transaction.
type Writer struct {
	s store.Session

	// Validate, when set, runs against every referenced account id
	// before any projection write. Nil keeps the permissive source
	// behavior.
	Validate ReferenceValidator

	now func() time.Time
}

func NewWriter(s store.Session) *Writer {
	return &Writer{s: s, now: time.Now}
}

type projectionWrite struct {
	projection string
	stmt       string
	args       []any
}

// fanOut executes projection writes in order, stopping at the first
// failure. Each outcome is logged so a partial write is diagnosable.
func (w *Writer) fanOut(op string, writes []projectionWrite) error {
	succeeded := make([]string, 0, len(writes))
	for _, pw := range writes {
		if err := w.s.Exec(pw.stmt, pw.args...); err != nil {
			logger.L().Errorw("Projection write failed",
				"op", op,
				"projection", pw.projection,
				"succeeded", strings.Join(succeeded, ","),
				"error", err)
			return &PartialWriteError{Op: op, Succeeded: succeeded, Failed: pw.projection, Err: err}
		}
		succeeded = append(succeeded, pw.projection)
		logger.L().Debugw("Projection write ok", "op", op, "projection", pw.projection)
	}
	return nil
}

func (w *Writer) validateRefs(ids ...string) error {
	if w.Validate == nil {
		return nil
	}
	for _, id := range ids {
		if err := w.Validate(id); err != nil {
			return fmt.Errorf("validate account %s: %w", id, err)
		}
	}
	return nil
}

// InsertAppointment writes the appointment into all three projections
// and a companion alert for the patient, dated at the appointment date.
// When the appointment carries no identifier one is generated from its
// date; status defaults to Scheduled.
func (w *Writer) InsertAppointment(a *Appointment) error {
	if err := w.validateRefs(a.PatientID, a.DoctorID); err != nil {
		return err
	}
	if a.ID == (ident.ID{}) {
		a.ID = ident.New(a.Date)
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}

	args := []any{a.ID, a.Date, a.PatientID, a.DoctorID, string(a.Status), a.Notes}
	alert := Alert{
		ID:        a.ID,
		AccountID: a.PatientID,
		Date:      a.Date,
		Type:      "Appointment",
		Message:   fmt.Sprintf("You have an appointment scheduled with doctor %s", a.DoctorID),
	}
	return w.fanOut("insert appointment", []projectionWrite{
		{projAppointmentsByPatient, insertAppointmentByPatient, args},
		{projAppointmentsByDoctor, insertAppointmentByDoctor, args},
		{projAppointmentsByPD, insertAppointmentByPD, args},
		{projAlertsByAccount, insertAlert, []any{alert.ID, alert.AccountID, alert.Date, alert.Type, alert.Message}},
	})
}

// UpdateAppointment applies the same status/notes change to all three
// projections keyed by the same appointment id. An empty status sets
// only notes and vice versa; keys never change. Concurrent updates race
// last-writer-wins per projection and may interleave; that is the
// store's consistency model, not detected here.
func (w *Writer) UpdateAppointment(id ident.ID, patientID, doctorID string, status Status, notes string) error {
	var writes []projectionWrite
	switch {
	case status == "" && notes == "":
		return ErrNoUpdateFields
	case status == "":
		writes = []projectionWrite{
			{projAppointmentsByPatient, updateAppointmentNotesByPatient, []any{notes, patientID, id}},
			{projAppointmentsByDoctor, updateAppointmentNotesByDoctor, []any{notes, doctorID, id}},
			{projAppointmentsByPD, updateAppointmentNotesByPD, []any{notes, patientID, doctorID, id}},
		}
	case notes == "":
		writes = []projectionWrite{
			{projAppointmentsByPatient, updateAppointmentStatusByPatient, []any{string(status), patientID, id}},
			{projAppointmentsByDoctor, updateAppointmentStatusByDoctor, []any{string(status), doctorID, id}},
			{projAppointmentsByPD, updateAppointmentStatusByPD, []any{string(status), patientID, doctorID, id}},
		}
	default:
		writes = []projectionWrite{
			{projAppointmentsByPatient, updateAppointmentByPatient, []any{string(status), notes, patientID, id}},
			{projAppointmentsByDoctor, updateAppointmentByDoctor, []any{string(status), notes, doctorID, id}},
			{projAppointmentsByPD, updateAppointmentByPD, []any{string(status), notes, patientID, doctorID, id}},
		}
	}
	return w.fanOut("update appointment", writes)
}

// InsertVitalSign writes the reading into both projections and, when
// the threshold table reports it abnormal, a companion alert stamped at
// write time and dated at the reading date, before returning.
func (w *Writer) InsertVitalSign(v *VitalSign) error {
	if err := w.validateRefs(v.AccountID); err != nil {
		return err
	}
	v.Type = strings.ToLower(strings.TrimSpace(v.Type))
	if v.ID == (ident.ID{}) {
		v.ID = ident.New(v.Date)
	}

	args := []any{v.ID, v.AccountID, v.Type, v.Value, v.Date}
	writes := []projectionWrite{
		{projVitalSignsByAccount, insertVitalSignByAccount, args},
		{projVitalSignsByType, insertVitalSignByType, args},
	}
	if vitals.IsAbnormal(v.Type, v.Value) {
		logger.L().Infow("Abnormal vital sign",
			"account_id", v.AccountID, "type", v.Type, "value", v.Value)
		alert := Alert{
			ID:        ident.New(w.now()),
			AccountID: v.AccountID,
			Date:      v.Date,
			Type:      "Vital Signs",
			Message:   "Your vital signs are out of bounds, take a moment",
		}
		writes = append(writes, projectionWrite{
			projAlertsByAccount, insertAlert,
			[]any{alert.ID, alert.AccountID, alert.Date, alert.Type, alert.Message},
		})
	}
	return w.fanOut("insert vital sign", writes)
}

// DeleteVitalSigns removes an account's readings whose identifiers fall
// in [Min(start), Max(end)]. Start defaults to 30 days before now, end
// to now. The by-account projection takes one range delete; the
// by-account-type projection clusters on (type, id), so the same bounds
// are reissued once per known type with the type column pinned, batched
// into a single round-trip group.
func (w *Writer) DeleteVitalSigns(accountID string, start, end time.Time) error {
	if start.IsZero() {
		start = w.now().Add(-deleteDefaultLookback)
	}
	if end.IsZero() {
		end = w.now()
	}
	lo, hi := ident.Min(start), ident.Max(end)

	if err := w.s.Exec(deleteVitalSignsByAccount, accountID, lo, hi); err != nil {
		logger.L().Errorw("Projection write failed",
			"op", "delete vital signs", "projection", projVitalSignsByAccount, "error", err)
		return &PartialWriteError{Op: "delete vital signs", Failed: projVitalSignsByAccount, Err: err}
	}

	b := &store.Batch{}
	for _, vitalType := range vitals.KnownTypes {
		b.Add(deleteVitalSignsByType, accountID, vitalType, lo, hi)
	}
	if err := w.s.ExecBatch(b); err != nil {
		logger.L().Errorw("Projection write failed",
			"op", "delete vital signs", "projection", projVitalSignsByType, "error", err)
		return &PartialWriteError{
			Op:        "delete vital signs",
			Succeeded: []string{projVitalSignsByAccount},
			Failed:    projVitalSignsByType,
			Err:       err,
		}
	}
	logger.L().Infow("Deleted vital signs",
		"account_id", accountID, "start", start, "end", end)
	return nil
}

// InsertAccount writes the account row, generating the registration
// identifier at write time when absent.
func (w *Writer) InsertAccount(acc *Account) error {
	if acc.Registration == (ident.ID{}) {
		acc.Registration = ident.New(w.now())
	}
	err := w.s.Exec(insertAccount,
		acc.AccountID, acc.Username, acc.FirstName, acc.LastName, acc.Registration, string(acc.Role))
	if err != nil {
		return fmt.Errorf("insert account %s: %w", acc.AccountID, err)
	}
	return nil
}

// InsertPatient writes the profile row, then the matching account row.
// The ordering is a call convention only; if the account write fails
// the profile row remains, reported as a partial write.
func (w *Writer) InsertPatient(p *Patient, username string) error {
	return w.fanOut("insert patient", []projectionWrite{
		{projPatients, insertPatient, []any{p.PatientID, p.FirstName, p.LastName, p.DOB}},
		{projAccounts, insertAccount, []any{
			p.PatientID, username, p.FirstName, p.LastName, ident.New(w.now()), string(RolePatient)}},
	})
}

// InsertDoctor writes the profile row, then the matching account row.
func (w *Writer) InsertDoctor(d *Doctor, username string) error {
	return w.fanOut("insert doctor", []projectionWrite{
		{projDoctors, insertDoctor, []any{d.DoctorID, d.FirstName, d.LastName, d.Specialty}},
		{projAccounts, insertAccount, []any{
			d.DoctorID, username, d.FirstName, d.LastName, ident.New(w.now()), string(RoleDoctor)}},
	})
}

// InsertAlert writes a single alert row. Alerts have one projection.
func (w *Writer) InsertAlert(a *Alert) error {
	if a.ID == (ident.ID{}) {
		a.ID = ident.New(a.Date)
	}
	err := w.s.Exec(insertAlert, a.ID, a.AccountID, a.Date, a.Type, a.Message)
	if err != nil {
		return fmt.Errorf("insert alert for %s: %w", a.AccountID, err)
	}
	return nil
}
