package guide

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestResolver() *Resolver {
	return NewResolver(100)
}

func TestParseNarrativeLabeledFields(t *testing.T) {
	narrative := "Department: Neurology\nDoctor: Dr. James Thompson\nDate: 2025-08-13\nTime: 10:00 AM"

	d := ParseNarrative(narrative)

	assert.Equal(t, "Neurology", d.Department)
	assert.Equal(t, "Dr. James Thompson", d.Doctor)
	assert.Equal(t, "2025-08-13", d.Date)
	assert.Equal(t, "10:00 AM", d.Time)
}

func TestParseNarrativeUnlabeledFallbacks(t *testing.T) {
	narrative := "You will see Dr. Lisa Park on 13/08/2025 at 9:30 AM in City General Hospital."

	d := ParseNarrative(narrative)

	assert.Equal(t, "Lisa Park", d.Doctor)
	assert.Equal(t, "13/08/2025", d.Date)
	assert.Equal(t, "9:30 AM", d.Time)
	assert.Equal(t, "City General Hospital", d.Hospital)
}

func TestParseNarrativeCombinedLocation(t *testing.T) {
	narrative := "Your visit is in Building A, Floor 3, Room 301-310 next week."

	d := ParseNarrative(narrative)

	assert.Equal(t, "A, 3, 301-310", d.Location)
}

func TestParseNarrativeLocationLabelWinsOverCombined(t *testing.T) {
	narrative := "Location: Building A, Floor 3, Room 301-310"

	d := ParseNarrative(narrative)

	assert.Equal(t, "Building A, Floor 3, Room 301-310", d.Location)
}

func TestParseNarrativeFieldsAreIndependent(t *testing.T) {
	d := ParseNarrative("Time: 2:00 PM")

	assert.Equal(t, "2:00 PM", d.Time)
	assert.Empty(t, d.Doctor)
	assert.Empty(t, d.Department)
	assert.Empty(t, d.Location)
}

func TestHasRealData(t *testing.T) {
	r := newTestResolver()
	long := strings.Repeat("x", 101)

	assert.True(t, r.HasRealData(long+" your appointment is confirmed"))
	assert.False(t, r.HasRealData("appointment"), "too short")
	assert.False(t, r.HasRealData(long), "no domain keyword")
	assert.False(t, r.HasRealData(""))
}

func TestRenderVisitGuideVerbatimNarrative(t *testing.T) {
	narrative := strings.Repeat("a", 90) + " appointment with cardiology team"

	out := newTestResolver().RenderVisitGuide(narrative, Details{})

	assert.Contains(t, out, narrative)
	assert.NotContains(t, out, DefaultDoctor)
}

func TestRenderVisitGuideTemplateFallback(t *testing.T) {
	out := newTestResolver().RenderVisitGuide("short note", Details{Doctor: "Dr. Jennifer Lee"})

	assert.Contains(t, out, "Dr. Jennifer Lee")
	assert.Contains(t, out, DefaultHospital)
	assert.Contains(t, out, DefaultDate)
	assert.Contains(t, out, "Check-in Procedures")
}

func TestVoiceSummaryDefaults(t *testing.T) {
	s := VoiceSummary("", Details{Department: "Neurology", Time: "2:00 PM"})

	assert.Contains(t, s, "Patient Name: Patient")
	assert.Contains(t, s, "Department: Neurology")
	assert.Contains(t, s, "Time: 2:00 PM")
	assert.Contains(t, s, "Doctor: "+DefaultDoctor)
}
