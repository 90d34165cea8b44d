package scheduling

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const maxCandidates = 10

var urgencyPriority = map[string]int{
	"emergency": 1,
	"high":      2,
	"medium":    3,
	"low":       4,
}

// preference is the set of time-of-day bands a patient is willing to take.
type preference struct {
	morning   bool
	afternoon bool
	evening   bool
}

func (p preference) any() bool {
	return !p.morning && !p.afternoon && !p.evening
}

func parsePreference(text string) preference {
	lower := strings.ToLower(text)
	p := preference{
		morning:   containsAny(lower, []string{"morning", "am", "early"}),
		afternoon: containsAny(lower, []string{"afternoon", "pm", "midday"}),
		evening:   containsAny(lower, []string{"evening", "night", "late"}),
	}
	if containsAny(lower, []string{"any", "flexible", "whenever"}) {
		return preference{}
	}
	return p
}

// Allocator books appointments from a generated availability window.
// The random source is injected so tests can pin slot selection; production
// wiring seeds it from entropy.
type Allocator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewAllocator(rng *rand.Rand, now func() time.Time) *Allocator {
	return &Allocator{rng: rng, now: now}
}

// Schedule picks a slot for the department and urgency, honoring the
// patient's free-text time preference. Returns a NoSlotsError when the
// candidate pool comes up empty.
func (a *Allocator) Schedule(department, urgency, preferenceText, patientName string) (Appointment, error) {
	priority, ok := urgencyPriority[strings.ToLower(urgency)]
	if !ok {
		priority = 3
	}

	candidates := a.candidateSlots(priority, parsePreference(preferenceText))
	if len(candidates) == 0 {
		return Appointment{}, &NoSlotsError{
			Department:     department,
			Urgency:        urgency,
			Recommendation: "Contact department directly for urgent cases",
		}
	}

	selected := candidates[0]
	now := a.now()

	return Appointment{
		ID:                fmt.Sprintf("APT-%s", now.Format("20060102150405")),
		PatientName:       patientName,
		Department:        department,
		DoctorName:        AssignDoctor(department),
		Date:              selected.Date,
		Time:              selected.Time,
		UrgencyLevel:      urgency,
		EstimatedDuration: "30 minutes",
		Location:          DepartmentLocation(department),
		Instructions:      appointmentInstructions(department, urgency),
		NextSteps:         appointmentNextSteps(urgency),
		ScheduledAt:       now,
	}, nil
}

// CandidateSlots exposes the shuffled, truncated availability window.
func (a *Allocator) CandidateSlots(urgency, preferenceText string) []Slot {
	priority, ok := urgencyPriority[strings.ToLower(urgency)]
	if !ok {
		priority = 3
	}
	return a.candidateSlots(priority, parsePreference(preferenceText))
}

func (a *Allocator) candidateSlots(priority int, pref preference) []Slot {
	today := a.now()

	firstDay, lastDay := 7, 20
	if priority <= 2 {
		firstDay, lastDay = 1, 2
	}

	var slots []Slot
	for i := firstDay; i <= lastDay; i++ {
		date := today.AddDate(0, 0, i)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		dateStr := date.Format("2006-01-02")

		if pref.morning || pref.any() {
			for _, t := range morningTimes(priority) {
				slots = append(slots, Slot{Date: dateStr, Time: t})
			}
		}
		if pref.afternoon || pref.any() {
			for _, t := range afternoonTimes(priority) {
				slots = append(slots, Slot{Date: dateStr, Time: t})
			}
		}
		if pref.evening || pref.any() {
			slots = append(slots,
				Slot{Date: dateStr, Time: "04:00 PM"},
				Slot{Date: dateStr, Time: "05:00 PM"},
			)
		}
	}

	a.rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	if len(slots) > maxCandidates {
		slots = slots[:maxCandidates]
	}
	return slots
}

func morningTimes(priority int) []string {
	if priority <= 2 {
		return []string{"09:00 AM", "10:00 AM"}
	}
	return []string{"09:00 AM", "10:00 AM", "11:00 AM"}
}

func afternoonTimes(priority int) []string {
	if priority <= 2 {
		return []string{"02:00 PM", "03:00 PM"}
	}
	return []string{"01:00 PM", "02:00 PM", "03:00 PM"}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
