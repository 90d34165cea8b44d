package scheduling

import (
	"fmt"
	"time"
)

// Slot is one candidate appointment in the generated availability window.
// The window itself is ephemeral, only the selected slot survives.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Appointment is the booked slot plus everything the patient needs to know
// about it. Immutable once created.
type Appointment struct {
	ID                string    `json:"appointment_id"`
	PatientName       string    `json:"patient_name"`
	Department        string    `json:"department"`
	DoctorName        string    `json:"doctor_name"`
	Date              string    `json:"appointment_date"`
	Time              string    `json:"appointment_time"`
	UrgencyLevel      string    `json:"urgency_level"`
	EstimatedDuration string    `json:"estimated_duration"`
	Location          string    `json:"location"`
	Instructions      []string  `json:"instructions"`
	NextSteps         []string  `json:"next_steps"`
	ScheduledAt       time.Time `json:"scheduled_at"`
}

// NoSlotsError reports an empty candidate pool together with what the
// patient should do instead.
type NoSlotsError struct {
	Department     string
	Urgency        string
	Recommendation string
}

func (e *NoSlotsError) Error() string {
	return fmt.Sprintf("no available slots for %s (urgency %s): %s", e.Department, e.Urgency, e.Recommendation)
}
