package store

import (
	"fmt"

	"github.com/avaldes/carechart/internal/carechart/logger"
)

// Idempotent DDL for the canonical tables and every denormalized
// projection. Key layouts follow the query patterns: each appointment
// and vital-sign projection clusters on its time-ordered identifier in
// descending order so range reads return newest first.

const createKeyspace = `
	CREATE KEYSPACE IF NOT EXISTS %s
	WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d};
`

const createPatientsTable = `
	CREATE TABLE IF NOT EXISTS patients (
		patient_id TEXT,
		first_name TEXT,
		last_name TEXT,
		dob DATE,
		PRIMARY KEY (patient_id)
	);
`

const createDoctorsTable = `
	CREATE TABLE IF NOT EXISTS doctors (
		doctor_id TEXT,
		first_name TEXT,
		last_name TEXT,
		specialty TEXT,
		PRIMARY KEY (doctor_id)
	);
`

const createAccountsTable = `
	CREATE TABLE IF NOT EXISTS accounts (
		account_id TEXT,
		username TEXT,
		first_name TEXT,
		last_name TEXT,
		registration_date TIMEUUID,
		role TEXT,
		PRIMARY KEY (account_id)
	);
`

const createAppointmentsByPatientTable = `
	CREATE TABLE IF NOT EXISTS appointments_by_patient (
		appointment_id TIMEUUID,
		appointment_date TIMESTAMP,
		patient_id TEXT,
		doctor_id TEXT,
		status TEXT,
		notes TEXT,
		PRIMARY KEY (patient_id, appointment_id)
	) WITH CLUSTERING ORDER BY (appointment_id DESC);
`

const createAppointmentsByDoctorTable = `
	CREATE TABLE IF NOT EXISTS appointments_by_doctor (
		appointment_id TIMEUUID,
		appointment_date TIMESTAMP,
		patient_id TEXT,
		doctor_id TEXT,
		status TEXT,
		notes TEXT,
		PRIMARY KEY (doctor_id, appointment_id)
	) WITH CLUSTERING ORDER BY (appointment_id DESC);
`

const createAppointmentsByPDTable = `
	CREATE TABLE IF NOT EXISTS appointments_by_pd (
		appointment_id TIMEUUID,
		appointment_date TIMESTAMP,
		patient_id TEXT,
		doctor_id TEXT,
		status TEXT,
		notes TEXT,
		PRIMARY KEY ((patient_id, doctor_id), appointment_id)
	) WITH CLUSTERING ORDER BY (appointment_id DESC);
`

const createVitalSignsByAccountTable = `
	CREATE TABLE IF NOT EXISTS vital_signs_by_account_date (
		vital_sign_id TIMEUUID,
		account_id TEXT,
		type TEXT,
		value DOUBLE,
		date TIMESTAMP,
		PRIMARY KEY (account_id, vital_sign_id)
	) WITH CLUSTERING ORDER BY (vital_sign_id DESC);
`

const createVitalSignsByAccountTypeTable = `
	CREATE TABLE IF NOT EXISTS vital_signs_by_account_type_date (
		vital_sign_id TIMEUUID,
		account_id TEXT,
		type TEXT,
		value DOUBLE,
		date TIMESTAMP,
		PRIMARY KEY (account_id, type, vital_sign_id)
	) WITH CLUSTERING ORDER BY (type DESC, vital_sign_id DESC);
`

const createAlertsByAccountTable = `
	CREATE TABLE IF NOT EXISTS alerts_by_account_date (
		alert_id TIMEUUID,
		account_id TEXT,
		date TIMESTAMP,
		alert_type TEXT,
		alert_message TEXT,
		PRIMARY KEY (account_id, alert_id)
	) WITH CLUSTERING ORDER BY (alert_id DESC);
`

// EnsureKeyspace creates the keyspace if missing. Needs a cluster-level
// session (no keyspace bound). Identifiers cannot be bound parameters,
// hence the Sprintf.
func EnsureKeyspace(s Session, keyspace string, replicationFactor int) error {
	logger.L().Infow("Ensuring keyspace", "keyspace", keyspace, "replication_factor", replicationFactor)
	if err := s.Exec(fmt.Sprintf(createKeyspace, keyspace, replicationFactor)); err != nil {
		return fmt.Errorf("create keyspace %s: %w", keyspace, err)
	}
	return nil
}

// EnsureTables creates the canonical tables and every projection.
// Idempotent; run once at process start, never by the access layer.
func EnsureTables(s Session) error {
	tables := []struct {
		name string
		ddl  string
	}{
		{"patients", createPatientsTable},
		{"doctors", createDoctorsTable},
		{"accounts", createAccountsTable},
		{"appointments_by_patient", createAppointmentsByPatientTable},
		{"appointments_by_doctor", createAppointmentsByDoctorTable},
		{"appointments_by_pd", createAppointmentsByPDTable},
		{"vital_signs_by_account_date", createVitalSignsByAccountTable},
		{"vital_signs_by_account_type_date", createVitalSignsByAccountTypeTable},
		{"alerts_by_account_date", createAlertsByAccountTable},
	}
	for _, t := range tables {
		if err := s.Exec(t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		logger.L().Debugw("Ensured table", "table", t.name)
	}
	return nil
}
