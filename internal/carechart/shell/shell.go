// Package shell is the interactive console: login by account id, then a
// role-specific numbered menu driving the records writer and reader.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/avaldes/carechart/internal/carechart/ident"
	"github.com/avaldes/carechart/internal/carechart/logger"
	"github.com/avaldes/carechart/internal/carechart/records"
	"github.com/avaldes/carechart/internal/carechart/store"
)

const timeLayout = "2006-01-02 15:04"

type Shell struct {
	in  *bufio.Scanner
	out io.Writer

	writer *records.Writer
	reader *records.Reader
}

func New(s store.Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		in:     bufio.NewScanner(in),
		out:    out,
		writer: records.NewWriter(s),
		reader: records.NewReader(s),
	}
}

// Run loops on login until the user quits with an empty account id or
// the input ends.
func (sh *Shell) Run() error {
	fmt.Fprintln(sh.out, "*** Welcome to the Healthcare App ***")
	for {
		id, ok := sh.prompt("Account ID (empty to quit): ")
		if !ok || id == "" {
			return nil
		}
		acc, found, err := sh.reader.Account(id)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if !found {
			fmt.Fprintln(sh.out, "Account not found.")
			continue
		}
		logger.L().Infow("Login", "account_id", acc.AccountID, "role", acc.Role)
		fmt.Fprintf(sh.out, "Welcome back %s, %s!\n", acc.Role, acc.Username)

		switch acc.Role {
		case records.RoleDoctor:
			sh.doctorMenu(acc)
		case records.RolePatient:
			sh.patientMenu(acc)
		default:
			fmt.Fprintf(sh.out, "Unknown role %q for this account.\n", acc.Role)
		}
	}
}

func (sh *Shell) doctorMenu(acc records.Account) {
	for {
		fmt.Fprintln(sh.out)
		fmt.Fprintln(sh.out, "1 -- Create a new patient")
		fmt.Fprintln(sh.out, "2 -- View appointments")
		fmt.Fprintln(sh.out, "3 -- Create appointment")
		fmt.Fprintln(sh.out, "4 -- Update appointment")
		fmt.Fprintln(sh.out, "5 -- View vital signs")
		fmt.Fprintln(sh.out, "6 -- Delete vital signs")
		fmt.Fprintln(sh.out, "0 -- Log out")

		option, ok := sh.prompt("Option: ")
		if !ok || option == "0" {
			return
		}
		switch option {
		case "1":
			sh.createPatient()
		case "2":
			sh.viewAppointmentsAsDoctor(acc)
		case "3":
			sh.createAppointment(acc)
		case "4":
			sh.updateAppointment(acc)
		case "5":
			sh.viewVitalSignsAsDoctor()
		case "6":
			sh.deleteVitalSigns()
		default:
			fmt.Fprintln(sh.out, "Invalid option. Please try again.")
		}
	}
}

func (sh *Shell) patientMenu(acc records.Account) {
	for {
		fmt.Fprintln(sh.out)
		fmt.Fprintln(sh.out, "1 -- View appointments")
		fmt.Fprintln(sh.out, "2 -- View vital signs")
		fmt.Fprintln(sh.out, "3 -- View alerts")
		fmt.Fprintln(sh.out, "0 -- Log out")

		option, ok := sh.prompt("Option: ")
		if !ok || option == "0" {
			return
		}
		switch option {
		case "1":
			doctorID, _ := sh.prompt("Doctor ID (leave empty for all): ")
			dr := sh.promptDateRange()
			sh.printAppointments(sh.reader.Appointments(acc.AccountID, doctorID, dr))
		case "2":
			vitalType, _ := sh.prompt("Vital sign type (leave empty for all): ")
			dr := sh.promptDateRange()
			sh.printVitalSigns(sh.reader.VitalSigns(acc.AccountID, vitalType, dr))
		case "3":
			sh.printAlerts(sh.reader.Alerts(acc.AccountID))
		default:
			fmt.Fprintln(sh.out, "Invalid option. Please try again.")
		}
	}
}

func (sh *Shell) createPatient() {
	patientID, ok := sh.prompt("Patient ID: ")
	if !ok || patientID == "" {
		return
	}
	username, _ := sh.prompt("Username: ")
	first, _ := sh.prompt("First name: ")
	last, _ := sh.prompt("Last name: ")
	dob, _ := sh.promptDate("Date of birth (leave empty to skip): ")

	err := sh.writer.InsertPatient(&records.Patient{
		PatientID: patientID,
		FirstName: first,
		LastName:  last,
		DOB:       dob,
	}, username)
	if err != nil {
		fmt.Fprintf(sh.out, "Could not create patient: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "Patient created.")
}

func (sh *Shell) viewAppointmentsAsDoctor(acc records.Account) {
	patientID, _ := sh.prompt("Patient ID (leave empty for all): ")
	dr := sh.promptDateRange()
	sh.printAppointments(sh.reader.Appointments(patientID, acc.AccountID, dr))
}

func (sh *Shell) createAppointment(acc records.Account) {
	patientID, ok := sh.prompt("Patient ID: ")
	if !ok || patientID == "" {
		return
	}
	date, ok := sh.promptDate("Appointment date: ")
	if !ok || date.IsZero() {
		fmt.Fprintln(sh.out, "An appointment needs a date.")
		return
	}
	notes, _ := sh.prompt("Notes (leave empty for none): ")

	a := &records.Appointment{
		Date:      date,
		PatientID: patientID,
		DoctorID:  acc.AccountID,
		Notes:     notes,
	}
	if err := sh.writer.InsertAppointment(a); err != nil {
		fmt.Fprintf(sh.out, "Could not create appointment: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Appointment %s scheduled.\n", a.ID)
}

func (sh *Shell) updateAppointment(acc records.Account) {
	var id ident.ID
	for {
		raw, ok := sh.prompt("Appointment ID: ")
		if !ok || raw == "" {
			return
		}
		parsed, err := ident.Parse(raw)
		if err != nil {
			fmt.Fprintf(sh.out, "Not a valid appointment id: %v\n", err)
			continue
		}
		id = parsed
		break
	}
	patientID, ok := sh.prompt("Patient ID: ")
	if !ok || patientID == "" {
		return
	}

	var status records.Status
	for {
		raw, _ := sh.prompt("Status (leave empty for no change): ")
		if raw == "" {
			break
		}
		parsed, err := records.ParseStatus(raw)
		if err != nil {
			fmt.Fprintf(sh.out, "%v\n", err)
			continue
		}
		status = parsed
		break
	}
	notes, _ := sh.prompt("Notes (leave empty for no change): ")

	err := sh.writer.UpdateAppointment(id, patientID, acc.AccountID, status, notes)
	if errors.Is(err, records.ErrNoUpdateFields) {
		fmt.Fprintln(sh.out, "Nothing to update.")
		return
	}
	if err != nil {
		fmt.Fprintf(sh.out, "Could not update appointment: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "Appointment updated.")
}

func (sh *Shell) viewVitalSignsAsDoctor() {
	patientID, ok := sh.prompt("Patient ID: ")
	if !ok || patientID == "" {
		return
	}
	vitalType, _ := sh.prompt("Vital sign type (leave empty for all): ")
	dr := sh.promptDateRange()
	sh.printVitalSigns(sh.reader.VitalSigns(patientID, vitalType, dr))
}

func (sh *Shell) deleteVitalSigns() {
	patientID, ok := sh.prompt("Patient ID: ")
	if !ok || patientID == "" {
		return
	}
	start, _ := sh.promptDate("Start date (leave empty for 30 days ago): ")
	end, _ := sh.promptDate("End date (leave empty for today): ")

	if err := sh.writer.DeleteVitalSigns(patientID, start, end); err != nil {
		fmt.Fprintf(sh.out, "Could not delete vital signs: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "Vital signs deleted.")
}

func (sh *Shell) printAppointments(ch <-chan records.AppointmentResult) {
	n := 0
	for res := range ch {
		if res.Err != nil {
			fmt.Fprintf(sh.out, "Lookup failed: %v\n", res.Err)
			return
		}
		a := res.Appointment
		fmt.Fprintf(sh.out, "%s  %s  patient=%s doctor=%s  %s  %s\n",
			a.ID, a.Date.Format(timeLayout), a.PatientID, a.DoctorID, a.Status, a.Notes)
		n++
	}
	if n == 0 {
		fmt.Fprintln(sh.out, "Nothing found.")
	}
}

func (sh *Shell) printVitalSigns(ch <-chan records.VitalSignResult) {
	n := 0
	for res := range ch {
		if res.Err != nil {
			fmt.Fprintf(sh.out, "Lookup failed: %v\n", res.Err)
			return
		}
		v := res.VitalSign
		fmt.Fprintf(sh.out, "%s  %s  %s = %g\n",
			v.ID, v.Date.Format(timeLayout), v.Type, v.Value)
		n++
	}
	if n == 0 {
		fmt.Fprintln(sh.out, "Nothing found.")
	}
}

func (sh *Shell) printAlerts(ch <-chan records.AlertResult) {
	n := 0
	for res := range ch {
		if res.Err != nil {
			fmt.Fprintf(sh.out, "Lookup failed: %v\n", res.Err)
			return
		}
		a := res.Alert
		fmt.Fprintf(sh.out, "%s  [%s] %s\n", a.Date.Format(timeLayout), a.Type, a.Message)
		n++
	}
	if n == 0 {
		fmt.Fprintln(sh.out, "Nothing found.")
	}
}

// prompt prints a label and reads one trimmed line. ok is false when the
// input has ended.
func (sh *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

// promptDate reads a free-text date, re-prompting on malformed input.
// An empty line returns the zero time.
func (sh *Shell) promptDate(label string) (time.Time, bool) {
	for {
		raw, ok := sh.prompt(label)
		if !ok {
			return time.Time{}, false
		}
		if raw == "" {
			return time.Time{}, true
		}
		t, err := dateparse.ParseAny(raw)
		if err != nil {
			fmt.Fprintf(sh.out, "Could not parse %q as a date, try again.\n", raw)
			continue
		}
		return t, true
	}
}

// promptDateRange reads an optional start and end date. Both empty means
// no range; a missing start defaults to 30 days before the end, a
// missing end to now.
func (sh *Shell) promptDateRange() *records.DateRange {
	start, ok := sh.promptDate("Start date (leave empty for none): ")
	if !ok {
		return nil
	}
	end, ok := sh.promptDate("End date (leave empty for today): ")
	if !ok {
		return nil
	}
	if start.IsZero() && end.IsZero() {
		return nil
	}
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}
	return &records.DateRange{Start: start, End: end}
}
