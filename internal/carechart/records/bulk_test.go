package records

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaldes/carechart/internal/carechart/ident"
)

func TestBulkInsertAppointmentsGroupsAllProjections(t *testing.T) {
	s := &fakeSession{}
	w := NewWriter(s)

	as := []*Appointment{
		{PatientID: "P0001", DoctorID: "D0001", Date: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{PatientID: "P0002", DoctorID: "D0001", Date: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, w.BulkInsertAppointments(as))

	require.Len(t, s.batches, 1)
	// three projections plus the companion alert, per appointment
	entries := s.batches[0].Entries()
	require.Len(t, entries, 8)
	assert.Contains(t, entries[0].Stmt, "appointments_by_patient")
	assert.Contains(t, entries[3].Stmt, "alerts_by_account_date")

	// ids and default status were filled in
	for _, a := range as {
		assert.NotEqual(t, ident.ID{}, a.ID)
		assert.Equal(t, StatusScheduled, a.Status)
	}
}

func TestBulkInsertVitalSignsAlertsOnlyOnAbnormal(t *testing.T) {
	s := &fakeSession{}
	w := NewWriter(s)

	date := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	vs := []*VitalSign{
		{AccountID: "P0001", Type: "Heart Rate", Value: 150, Date: date},
		{AccountID: "P0001", Type: "heart rate", Value: 75, Date: date},
		{AccountID: "P0001", Type: "steps", Value: 1e9, Date: date},
	}
	require.NoError(t, w.BulkInsertVitalSigns(vs))

	require.Len(t, s.batches, 1)
	alerts := 0
	for _, e := range s.batches[0].Entries() {
		if strings.Contains(e.Stmt, "alerts_by_account_date") {
			alerts++
		}
	}
	assert.Equal(t, 1, alerts, "only the abnormal reading produces an alert")
	// two projection rows per reading plus the one alert
	assert.Len(t, s.batches[0].Entries(), 7)
	assert.Equal(t, "heart rate", vs[0].Type, "type is normalized in place")
}

func TestBulkInsertAccountsStampsRegistration(t *testing.T) {
	s := &fakeSession{}
	w := NewWriter(s)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	accs := []*Account{
		{AccountID: "P0001", Username: "jdoe", Role: RolePatient},
		{AccountID: "D0001", Username: "drwho", Role: RoleDoctor},
	}
	require.NoError(t, w.BulkInsertAccounts(accs))

	require.Len(t, s.batches, 1)
	assert.Len(t, s.batches[0].Entries(), 2)
	for _, acc := range accs {
		assert.True(t, ident.Timestamp(acc.Registration).Equal(now))
	}
}
