package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func newTestAllocator(seed int64, now time.Time) *Allocator {
	return NewAllocator(rand.New(rand.NewSource(seed)), func() time.Time { return now })
}

func TestScheduleReturnsWeekdayMorningSlots(t *testing.T) {
	a := newTestAllocator(1, monday)

	slots := a.CandidateSlots("low", "weekday mornings")
	require.NotEmpty(t, slots)

	for _, s := range slots {
		date, err := time.Parse("2006-01-02", s.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, date.Weekday())
		assert.NotEqual(t, time.Sunday, date.Weekday())
		assert.Contains(t, []string{"09:00 AM", "10:00 AM", "11:00 AM"}, s.Time)
	}
}

func TestScheduleUrgentWindowIsNextTwoDays(t *testing.T) {
	a := newTestAllocator(1, monday)

	slots := a.CandidateSlots("high", "any")
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.Contains(t, []string{"2025-06-03", "2025-06-04"}, s.Date)
	}
}

func TestScheduleRoutineWindowIsOneToThreeWeeksOut(t *testing.T) {
	a := newTestAllocator(1, monday)

	slots := a.CandidateSlots("low", "flexible")
	require.NotEmpty(t, slots)
	assert.Len(t, slots, 10, "candidate pool is truncated")

	first := monday.AddDate(0, 0, 7)
	last := monday.AddDate(0, 0, 20)
	for _, s := range slots {
		date, err := time.Parse("2006-01-02", s.Date)
		require.NoError(t, err)
		assert.False(t, date.Before(first.Truncate(24*time.Hour)))
		assert.False(t, date.After(last))
	}
}

func TestScheduleIsDeterministicWithFixedSeed(t *testing.T) {
	first, err := newTestAllocator(42, monday).Schedule("cardiology", "low", "afternoon", "Maria Lopez")
	require.NoError(t, err)
	second, err := newTestAllocator(42, monday).Schedule("cardiology", "low", "afternoon", "Maria Lopez")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScheduleAppointmentFields(t *testing.T) {
	appt, err := newTestAllocator(7, monday).Schedule("cardiology", "high", "morning", "Maria Lopez")
	require.NoError(t, err)

	assert.Equal(t, "APT-20250602120000", appt.ID)
	assert.Equal(t, "Maria Lopez", appt.PatientName)
	assert.Equal(t, "Dr. Sarah Wilson", appt.DoctorName)
	assert.Equal(t, "Building A, Floor 2, Room 201-210", appt.Location)
	assert.Equal(t, "30 minutes", appt.EstimatedDuration)
	assert.Contains(t, appt.Instructions, "Fasting may be required for certain tests")
	assert.Equal(t, "Monitor symptoms closely until appointment", appt.NextSteps[0])
	assert.Contains(t, []string{"09:00 AM", "10:00 AM"}, appt.Time)
}

func TestScheduleNoSlotsOverWeekend(t *testing.T) {
	// 2025-06-06 is a Friday, so the two-day urgent window hits the weekend.
	friday := time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC)

	_, err := newTestAllocator(1, friday).Schedule("neurology", "emergency", "", "Rahul Verma")

	var noSlots *NoSlotsError
	require.ErrorAs(t, err, &noSlots)
	assert.Equal(t, "Contact department directly for urgent cases", noSlots.Recommendation)
	assert.Equal(t, "neurology", noSlots.Department)
}

func TestParsePreference(t *testing.T) {
	tests := []struct {
		text string
		want preference
	}{
		{"I prefer mornings", preference{morning: true}},
		{"evening please", preference{evening: true}},
		{"afternoon or evening", preference{afternoon: true, evening: true}},
		{"whenever works", preference{}},
		{"", preference{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePreference(tt.text))
		})
	}
}

func TestAssignDoctorUnknownDepartmentFallsBack(t *testing.T) {
	assert.Equal(t, "Dr. Lisa Park", AssignDoctor("radiology"))
	assert.Equal(t, "Main Building, Floor 1", DepartmentLocation("radiology"))
}

func TestNavigate(t *testing.T) {
	g := Navigate("neurology", "10:00 AM")

	assert.Equal(t, "Building A, Floor 3, Room 301-310", g.Location)
	assert.Contains(t, g.Directions, "Turn right and follow signs to Neurology Department")
	assert.Contains(t, g.Directions, "Check in at Counter 4")
	assert.Equal(t, "555-0301", g.Contact.DepartmentPhone)
	assert.Equal(t, "911", g.Contact.Emergency)
}
