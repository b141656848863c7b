package records

import (
	"fmt"
	"strings"

	"github.com/avaldes/carechart/internal/carechart/ident"
	"github.com/avaldes/carechart/internal/carechart/store"
	"github.com/avaldes/carechart/internal/carechart/vitals"
)

// Bulk inserts accumulate every projection statement of their rows into
// one batch, which the store flushes in chunked round trips. Unlike the
// single-row writers a failed chunk is reported as a plain error, not a
// PartialWriteError: the loader retries whole files, not projections.

// BulkInsertAccounts batches account rows.
func (w *Writer) BulkInsertAccounts(accs []*Account) error {
	b := &store.Batch{}
	for _, acc := range accs {
		if acc.Registration == (ident.ID{}) {
			acc.Registration = ident.New(w.now())
		}
		b.Add(insertAccount,
			acc.AccountID, acc.Username, acc.FirstName, acc.LastName, acc.Registration, string(acc.Role))
	}
	if err := w.s.ExecBatch(b); err != nil {
		return fmt.Errorf("bulk insert accounts: %w", err)
	}
	return nil
}

// BulkInsertPatients batches profile rows only; account rows travel
// separately through BulkInsertAccounts.
func (w *Writer) BulkInsertPatients(ps []*Patient) error {
	b := &store.Batch{}
	for _, p := range ps {
		b.Add(insertPatient, p.PatientID, p.FirstName, p.LastName, p.DOB)
	}
	if err := w.s.ExecBatch(b); err != nil {
		return fmt.Errorf("bulk insert patients: %w", err)
	}
	return nil
}

// BulkInsertDoctors batches profile rows only.
func (w *Writer) BulkInsertDoctors(ds []*Doctor) error {
	b := &store.Batch{}
	for _, d := range ds {
		b.Add(insertDoctor, d.DoctorID, d.FirstName, d.LastName, d.Specialty)
	}
	if err := w.s.ExecBatch(b); err != nil {
		return fmt.Errorf("bulk insert doctors: %w", err)
	}
	return nil
}

// BulkInsertAppointments batches every appointment into its three
// projections plus the companion alert.
func (w *Writer) BulkInsertAppointments(as []*Appointment) error {
	b := &store.Batch{}
	for _, a := range as {
		if a.ID == (ident.ID{}) {
			a.ID = ident.New(a.Date)
		}
		if a.Status == "" {
			a.Status = StatusScheduled
		}
		args := []any{a.ID, a.Date, a.PatientID, a.DoctorID, string(a.Status), a.Notes}
		b.Add(insertAppointmentByPatient, args...)
		b.Add(insertAppointmentByDoctor, args...)
		b.Add(insertAppointmentByPD, args...)
		b.Add(insertAlert, a.ID, a.PatientID, a.Date, "Appointment",
			fmt.Sprintf("You have an appointment scheduled with doctor %s", a.DoctorID))
	}
	if err := w.s.ExecBatch(b); err != nil {
		return fmt.Errorf("bulk insert appointments: %w", err)
	}
	return nil
}

// BulkInsertVitalSigns batches every reading into both projections,
// with the companion alert for abnormal values.
func (w *Writer) BulkInsertVitalSigns(vs []*VitalSign) error {
	b := &store.Batch{}
	for _, v := range vs {
		v.Type = strings.ToLower(strings.TrimSpace(v.Type))
		if v.ID == (ident.ID{}) {
			v.ID = ident.New(v.Date)
		}
		args := []any{v.ID, v.AccountID, v.Type, v.Value, v.Date}
		b.Add(insertVitalSignByAccount, args...)
		b.Add(insertVitalSignByType, args...)
		if vitals.IsAbnormal(v.Type, v.Value) {
			b.Add(insertAlert, ident.New(w.now()), v.AccountID, v.Date,
				"Vital Signs", "Your vital signs are out of bounds, take a moment")
		}
	}
	if err := w.s.ExecBatch(b); err != nil {
		return fmt.Errorf("bulk insert vital signs: %w", err)
	}
	return nil
}
