package loadr

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/avaldes/carechart/internal/carechart/records"
	"github.com/avaldes/carechart/internal/carechart/store"
)

// Load reads the generated CSV files and feeds them through the fan-out
// writer, bootstrapping the schema first. Every run carries a generated
// run id in its logs.
func Load(configPath *string) {
	cfg, err := readConfig(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] Error loading config: %v", err)
	}
	runID := uuid.NewString()
	log.Printf("[INFO] Starting load run=%s dataDir=%s keyspace=%s",
		runID, cfg.DataDir, cfg.Cluster.Keyspace)

	s, err := connectAndBootstrap(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	defer s.Close()
	w := records.NewWriter(s)

	counts := map[string]int{}
	steps := []struct {
		file string
		load func(*records.Writer, [][]string) (int, error)
	}{
		{"patients.csv", loadPatients},
		{"doctors.csv", loadDoctors},
		{"accounts.csv", loadAccounts},
		{"appointments.csv", loadAppointments},
		{"vital_signs.csv", loadVitalSigns},
	}
	for _, step := range steps {
		rows, err := readCSV(filepath.Join(cfg.DataDir, step.file))
		if err != nil {
			log.Fatalf("[FATAL] run=%s: %v", runID, err)
		}
		n, err := step.load(w, rows)
		if err != nil {
			log.Fatalf("[FATAL] run=%s load %s: %v", runID, step.file, err)
		}
		counts[step.file] = n
		log.Printf("[INFO] run=%s loaded %s rows=%d", runID, step.file, n)
	}

	fmt.Printf("Load complete: patients=%d doctors=%d accounts=%d appointments=%d vital_signs=%d\n",
		counts["patients.csv"], counts["doctors.csv"], counts["accounts.csv"],
		counts["appointments.csv"], counts["vital_signs.csv"])
}

func connectAndBootstrap(cfg Config) (*store.CQLSession, error) {
	hosts := cfg.Cluster.Hosts
	if len(hosts) == 0 {
		hosts = []string{"localhost"}
	}
	keyspace := cfg.Cluster.Keyspace
	if keyspace == "" {
		keyspace = "healthcare"
	}
	rf := cfg.Cluster.ReplicationFactor
	if rf < 1 {
		rf = 1
	}

	s, err := store.Connect(hosts, "", 10*time.Second)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureKeyspace(s, keyspace, rf); err != nil {
		s.Close()
		return nil, err
	}
	s.Close()

	s, err = store.Connect(hosts, keyspace, 10*time.Second)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureTables(s); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// readCSV returns the data rows of a headered CSV file.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadPatients(w *records.Writer, rows [][]string) (int, error) {
	ps := make([]*records.Patient, 0, len(rows))
	for _, row := range rows {
		dob, err := time.Parse("2006-01-02", row[3])
		if err != nil {
			return 0, fmt.Errorf("patient %s dob: %w", row[0], err)
		}
		ps = append(ps, &records.Patient{
			PatientID: row[0], FirstName: row[1], LastName: row[2], DOB: dob,
		})
	}
	return len(ps), w.BulkInsertPatients(ps)
}

func loadDoctors(w *records.Writer, rows [][]string) (int, error) {
	ds := make([]*records.Doctor, 0, len(rows))
	for _, row := range rows {
		ds = append(ds, &records.Doctor{
			DoctorID: row[0], FirstName: row[1], LastName: row[2], Specialty: row[3],
		})
	}
	return len(ds), w.BulkInsertDoctors(ds)
}

func loadAccounts(w *records.Writer, rows [][]string) (int, error) {
	accs := make([]*records.Account, 0, len(rows))
	for _, row := range rows {
		role, err := records.ParseRole(row[4])
		if err != nil {
			return 0, fmt.Errorf("account %s: %w", row[0], err)
		}
		accs = append(accs, &records.Account{
			AccountID: row[0], Username: row[1], FirstName: row[2], LastName: row[3], Role: role,
		})
	}
	return len(accs), w.BulkInsertAccounts(accs)
}

func loadAppointments(w *records.Writer, rows [][]string) (int, error) {
	as := make([]*records.Appointment, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(csvTimeLayout, row[2])
		if err != nil {
			return 0, fmt.Errorf("appointment date %q: %w", row[2], err)
		}
		status, err := records.ParseStatus(row[3])
		if err != nil {
			return 0, err
		}
		as = append(as, &records.Appointment{
			PatientID: row[0], DoctorID: row[1], Date: date, Status: status, Notes: row[4],
		})
	}
	return len(as), w.BulkInsertAppointments(as)
}

func loadVitalSigns(w *records.Writer, rows [][]string) (int, error) {
	vs := make([]*records.VitalSign, 0, len(rows))
	for _, row := range rows {
		value, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return 0, fmt.Errorf("vital sign value %q: %w", row[2], err)
		}
		date, err := time.Parse(csvTimeLayout, row[3])
		if err != nil {
			return 0, fmt.Errorf("vital sign date %q: %w", row[3], err)
		}
		vs = append(vs, &records.VitalSign{
			AccountID: row[0], Type: row[1], Value: value, Date: date,
		})
	}
	return len(vs), w.BulkInsertVitalSigns(vs)
}
