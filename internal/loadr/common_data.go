package loadr

import (
	"github.com/brianvoe/gofakeit/v7"
)

// Shared lists for synthetic data generation.

// RandomSpecialty returns a random specialty from Specialties
func RandomSpecialty() string {
	return Specialties[gofakeit.Number(0, len(Specialties)-1)]
}

var Specialties = []string{
	"Cardiology", "Dermatology", "Endocrinology", "Gastroenterology",
	"General Practice", "Geriatrics", "Hematology", "Infectious Disease",
	"Internal Medicine", "Nephrology", "Neurology", "Obstetrics",
	"Oncology", "Ophthalmology", "Orthopedics", "Otolaryngology",
	"Pediatrics", "Psychiatry", "Pulmonology", "Radiology",
	"Rheumatology", "Urology",
}

// RandomAppointmentNote returns a random note from AppointmentNotes,
// sometimes empty.
func RandomAppointmentNote() string {
	if gofakeit.Number(0, 3) == 0 {
		return ""
	}
	return AppointmentNotes[gofakeit.Number(0, len(AppointmentNotes)-1)]
}

var AppointmentNotes = []string{
	"Routine checkup", "Follow-up visit", "Annual physical",
	"Blood work review", "Medication adjustment", "Referred by GP",
	"Patient reports chest discomfort", "Post-surgery review",
	"Vaccination appointment", "Discuss lab results",
	"Recurring headache complaint", "Blood pressure monitoring",
	"Fasting required before visit", "Bring previous prescriptions",
}

// VitalRange bounds the generated values for one vital-sign type. The
// ranges deliberately straddle the abnormal thresholds so a share of
// readings produces alerts.
type VitalRange struct {
	Min float64
	Max float64
}

var VitalRanges = map[string]VitalRange{
	"blood pressure": {70, 180},
	"heart rate":     {45, 160},
	"oxygenation":    {85, 100},
	"temperature":    {35.0, 40.0},
	"steps":          {0, 25000},
	"weight":         {45, 130},
	"height":         {150, 200},
}

// RandomVitalValue returns a plausible value for the given type.
func RandomVitalValue(vitalType string) float64 {
	r, ok := VitalRanges[vitalType]
	if !ok {
		return gofakeit.Float64Range(0, 100)
	}
	return gofakeit.Float64Range(r.Min, r.Max)
}
