package records

// CQL statements for every projection. Identifier range bounds are
// computed client-side (ident.Min/Max) and bound as plain TIMEUUID
// parameters, so selects and deletes compare with >=/<= directly.

// Projection names, used for schema-aligned logging and partial-write
// reporting.
const (
	projAppointmentsByPatient = "appointments_by_patient"
	projAppointmentsByDoctor  = "appointments_by_doctor"
	projAppointmentsByPD      = "appointments_by_pd"
	projVitalSignsByAccount   = "vital_signs_by_account_date"
	projVitalSignsByType      = "vital_signs_by_account_type_date"
	projAlertsByAccount       = "alerts_by_account_date"
	projAccounts              = "accounts"
	projPatients              = "patients"
	projDoctors               = "doctors"
)

const (
	insertAppointmentByPatient = `
	INSERT INTO appointments_by_patient (appointment_id, appointment_date, patient_id, doctor_id, status, notes)
	VALUES (?, ?, ?, ?, ?, ?)`

	insertAppointmentByDoctor = `
	INSERT INTO appointments_by_doctor (appointment_id, appointment_date, patient_id, doctor_id, status, notes)
	VALUES (?, ?, ?, ?, ?, ?)`

	insertAppointmentByPD = `
	INSERT INTO appointments_by_pd (appointment_id, appointment_date, patient_id, doctor_id, status, notes)
	VALUES (?, ?, ?, ?, ?, ?)`

	updateAppointmentByPatient = `
	UPDATE appointments_by_patient SET status = ?, notes = ?
	WHERE patient_id = ? AND appointment_id = ?`

	updateAppointmentByDoctor = `
	UPDATE appointments_by_doctor SET status = ?, notes = ?
	WHERE doctor_id = ? AND appointment_id = ?`

	updateAppointmentByPD = `
	UPDATE appointments_by_pd SET status = ?, notes = ?
	WHERE patient_id = ? AND doctor_id = ? AND appointment_id = ?`

	updateAppointmentStatusByPatient = `
	UPDATE appointments_by_patient SET status = ?
	WHERE patient_id = ? AND appointment_id = ?`

	updateAppointmentStatusByDoctor = `
	UPDATE appointments_by_doctor SET status = ?
	WHERE doctor_id = ? AND appointment_id = ?`

	updateAppointmentStatusByPD = `
	UPDATE appointments_by_pd SET status = ?
	WHERE patient_id = ? AND doctor_id = ? AND appointment_id = ?`

	updateAppointmentNotesByPatient = `
	UPDATE appointments_by_patient SET notes = ?
	WHERE patient_id = ? AND appointment_id = ?`

	updateAppointmentNotesByDoctor = `
	UPDATE appointments_by_doctor SET notes = ?
	WHERE doctor_id = ? AND appointment_id = ?`

	updateAppointmentNotesByPD = `
	UPDATE appointments_by_pd SET notes = ?
	WHERE patient_id = ? AND doctor_id = ? AND appointment_id = ?`

	selectAppointmentsByPatient = `
	SELECT appointment_id, appointment_date, patient_id, doctor_id, status, notes
	FROM appointments_by_patient
	WHERE patient_id = ? AND appointment_id >= ?`

	selectAppointmentsByPatientRange = `
	SELECT appointment_id, appointment_date, patient_id, doctor_id, status, notes
	FROM appointments_by_patient
	WHERE patient_id = ? AND appointment_id >= ? AND appointment_id <= ?`

	selectAppointmentsByDoctor = `
	SELECT appointment_id, appointment_date, patient_id, doctor_id, status, notes
	FROM appointments_by_doctor
	WHERE doctor_id = ? AND appointment_id >= ?`

	selectAppointmentsByDoctorRange = `
	SELECT appointment_id, appointment_date, patient_id, doctor_id, status, notes
	FROM appointments_by_doctor
	WHERE doctor_id = ? AND appointment_id >= ? AND appointment_id <= ?`

	selectAppointmentsByPD = `
	SELECT appointment_id, appointment_date, patient_id, doctor_id, status, notes
	FROM appointments_by_pd
	WHERE patient_id = ? AND doctor_id = ? AND appointment_id >= ?`

	selectAppointmentsByPDRange = `
	SELECT appointment_id, appointment_date, patient_id, doctor_id, status, notes
	FROM appointments_by_pd
	WHERE patient_id = ? AND doctor_id = ? AND appointment_id >= ? AND appointment_id <= ?`

	insertVitalSignByAccount = `
	INSERT INTO vital_signs_by_account_date (vital_sign_id, account_id, type, value, date)
	VALUES (?, ?, ?, ?, ?)`

	insertVitalSignByType = `
	INSERT INTO vital_signs_by_account_type_date (vital_sign_id, account_id, type, value, date)
	VALUES (?, ?, ?, ?, ?)`

	selectVitalSignsByAccount = `
	SELECT vital_sign_id, account_id, type, value, date
	FROM vital_signs_by_account_date
	WHERE account_id = ? AND vital_sign_id >= ?`

	selectVitalSignsByAccountRange = `
	SELECT vital_sign_id, account_id, type, value, date
	FROM vital_signs_by_account_date
	WHERE account_id = ? AND vital_sign_id >= ? AND vital_sign_id <= ?`

	selectVitalSignsByType = `
	SELECT vital_sign_id, account_id, type, value, date
	FROM vital_signs_by_account_type_date
	WHERE account_id = ? AND type = ? AND vital_sign_id >= ?`

	selectVitalSignsByTypeRange = `
	SELECT vital_sign_id, account_id, type, value, date
	FROM vital_signs_by_account_type_date
	WHERE account_id = ? AND type = ? AND vital_sign_id >= ? AND vital_sign_id <= ?`

	deleteVitalSignsByAccount = `
	DELETE FROM vital_signs_by_account_date
	WHERE account_id = ? AND vital_sign_id >= ? AND vital_sign_id <= ?`

	deleteVitalSignsByType = `
	DELETE FROM vital_signs_by_account_type_date
	WHERE account_id = ? AND type = ? AND vital_sign_id >= ? AND vital_sign_id <= ?`

	insertAlert = `
	INSERT INTO alerts_by_account_date (alert_id, account_id, date, alert_type, alert_message)
	VALUES (?, ?, ?, ?, ?)`

	selectAlertsByAccount = `
	SELECT alert_id, account_id, date, alert_type, alert_message
	FROM alerts_by_account_date
	WHERE account_id = ? AND alert_id >= ?`

	insertAccount = `
	INSERT INTO accounts (account_id, username, first_name, last_name, registration_date, role)
	VALUES (?, ?, ?, ?, ?, ?)`

	selectAccount = `
	SELECT account_id, username, first_name, last_name, registration_date, role
	FROM accounts
	WHERE account_id = ?`

	insertPatient = `
	INSERT INTO patients (patient_id, first_name, last_name, dob)
	VALUES (?, ?, ?, ?)`

	insertDoctor = `
	INSERT INTO doctors (doctor_id, first_name, last_name, specialty)
	VALUES (?, ?, ?, ?)`
)
