package loadr

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gopkg.in/yaml.v3"

	"github.com/avaldes/carechart/internal/carechart/vitals"
)

// csvTimeLayout is the timestamp format used in every generated file.
const csvTimeLayout = "2006-01-02 15:04:05"

// Config describes a generate/load run parsed from YAML.
type Config struct {
	DataDir      string `yaml:"dataDir"`
	Seed         int64  `yaml:"seed"`
	Patients     int    `yaml:"patients"`
	Doctors      int    `yaml:"doctors"`
	Appointments int    `yaml:"appointments"`
	VitalSigns   int    `yaml:"vitalSigns"`

	Cluster struct {
		Hosts             []string `yaml:"hosts"`
		Keyspace          string   `yaml:"keyspace"`
		ReplicationFactor int      `yaml:"replicationFactor"`
	} `yaml:"cluster"`
}

func readConfig(path string) (Config, error) {
	log.Printf("[DEBUG] Loading config from %s\n", path)
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	return cfg, nil
}

// Generate writes the CSV data set: patients, doctors, accounts,
// appointments, vital signs. Appointment and vital-sign rows reference
// only generated people so a load never produces dangling ids.
func Generate(configPath *string) {
	cfg, err := readConfig(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] Error loading config: %v", err)
	}

	// deterministic data if seed provided
	gofakeit.Seed(cfg.Seed)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("[FATAL] cannot create data dir: %v", err)
	}

	patientIDs := writePatientsCSV(cfg)
	doctorIDs := writeDoctorsCSV(cfg)
	writeAppointmentsCSV(cfg, patientIDs, doctorIDs)
	writeVitalSignsCSV(cfg, patientIDs)

	log.Printf("[INFO] Generation complete: patients=%d doctors=%d appointments=%d vital_signs=%d",
		len(patientIDs), len(doctorIDs), cfg.Appointments, cfg.VitalSigns)
	fmt.Printf("CSV files generated under %s\n", cfg.DataDir)
}

func newCSV(dir, name string, header []string) (*csv.Writer, *os.File) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		log.Fatalf("[FATAL] cannot create %s: %v", name, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		log.Fatalf("[FATAL] write %s header: %v", name, err)
	}
	return w, f
}

func closeCSV(w *csv.Writer, f *os.File, name string) {
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("[FATAL] write %s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("[FATAL] close %s: %v", name, err)
	}
}

// writePatientsCSV also emits the matching account rows and returns the
// generated patient ids.
func writePatientsCSV(cfg Config) []string {
	log.Printf("[INFO] Generating %d patients", cfg.Patients)
	pw, pf := newCSV(cfg.DataDir, "patients.csv",
		[]string{"patient_id", "first_name", "last_name", "dob"})
	aw, af := newCSV(cfg.DataDir, "accounts.csv",
		[]string{"account_id", "username", "first_name", "last_name", "role"})

	ids := make([]string, 0, cfg.Patients)
	for i := 0; i < cfg.Patients; i++ {
		id := fmt.Sprintf("P%05d", i+1)
		ids = append(ids, id)

		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		dob := gofakeit.DateRange(
			time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02")
		username := gofakeit.Username()

		if err := pw.Write([]string{id, first, last, dob}); err != nil {
			log.Fatalf("[FATAL] write patients.csv: %v", err)
		}
		if err := aw.Write([]string{id, username, first, last, "patient"}); err != nil {
			log.Fatalf("[FATAL] write accounts.csv: %v", err)
		}
	}

	closeCSV(pw, pf, "patients.csv")
	closeCSV(aw, af, "accounts.csv")
	log.Printf("[DEBUG] Wrote %d patients", len(ids))
	return ids
}

// writeDoctorsCSV appends the doctors' account rows to accounts.csv and
// returns the generated doctor ids.
func writeDoctorsCSV(cfg Config) []string {
	log.Printf("[INFO] Generating %d doctors", cfg.Doctors)
	dw, df := newCSV(cfg.DataDir, "doctors.csv",
		[]string{"doctor_id", "first_name", "last_name", "specialty"})

	af, err := os.OpenFile(filepath.Join(cfg.DataDir, "accounts.csv"),
		os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("[FATAL] append accounts.csv: %v", err)
	}
	aw := csv.NewWriter(af)

	ids := make([]string, 0, cfg.Doctors)
	for i := 0; i < cfg.Doctors; i++ {
		id := fmt.Sprintf("D%04d", i+1)
		ids = append(ids, id)

		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		specialty := RandomSpecialty()
		username := gofakeit.Username()

		if err := dw.Write([]string{id, first, last, specialty}); err != nil {
			log.Fatalf("[FATAL] write doctors.csv: %v", err)
		}
		if err := aw.Write([]string{id, username, first, last, "doctor"}); err != nil {
			log.Fatalf("[FATAL] write accounts.csv: %v", err)
		}
	}

	closeCSV(dw, df, "doctors.csv")
	closeCSV(aw, af, "accounts.csv")
	log.Printf("[DEBUG] Wrote %d doctors", len(ids))
	return ids
}

func writeAppointmentsCSV(cfg Config, patientIDs, doctorIDs []string) {
	log.Printf("[INFO] Generating %d appointments", cfg.Appointments)
	w, f := newCSV(cfg.DataDir, "appointments.csv",
		[]string{"patient_id", "doctor_id", "date", "status", "notes"})

	statuses := []string{"Scheduled", "Completed", "Cancelled"}
	for i := 0; i < cfg.Appointments; i++ {
		pid := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]
		did := doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)]
		date := time.Now().AddDate(0, 0, gofakeit.Number(-365, 60)).Format(csvTimeLayout)
		status := statuses[gofakeit.Number(0, len(statuses)-1)]
		notes := RandomAppointmentNote()

		if err := w.Write([]string{pid, did, date, status, notes}); err != nil {
			log.Fatalf("[FATAL] write appointments.csv: %v", err)
		}
	}

	closeCSV(w, f, "appointments.csv")
	log.Printf("[DEBUG] Wrote %d appointments", cfg.Appointments)
}

func writeVitalSignsCSV(cfg Config, patientIDs []string) {
	log.Printf("[INFO] Generating %d vital signs", cfg.VitalSigns)
	w, f := newCSV(cfg.DataDir, "vital_signs.csv",
		[]string{"account_id", "type", "value", "date"})

	for i := 0; i < cfg.VitalSigns; i++ {
		pid := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]
		vitalType := vitals.KnownTypes[gofakeit.Number(0, len(vitals.KnownTypes)-1)]
		value := RandomVitalValue(vitalType)
		date := time.Now().AddDate(0, 0, -gofakeit.Number(0, 365)).Format(csvTimeLayout)

		row := []string{pid, vitalType, strconv.FormatFloat(value, 'f', 1, 64), date}
		if err := w.Write(row); err != nil {
			log.Fatalf("[FATAL] write vital_signs.csv: %v", err)
		}
	}

	closeCSV(w, f, "vital_signs.csv")
	log.Printf("[DEBUG] Wrote %d vital signs", cfg.VitalSigns)
}
