package intake

import (
	"time"

	"github.com/google/uuid"

	"patient-intake/internal/document"
	"patient-intake/internal/insurance"
	"patient-intake/internal/scheduling"
	"patient-intake/internal/triage"
)

// Session is one patient's onboarding run. The session row itself is
// immutable; every record produced during the run is appended under it.
type Session struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Documents holds the most recent extraction per document kind for one
// session. A nil entry means that document was never uploaded.
type Documents struct {
	Prescription *document.PrescriptionRecord
	Insurance    *document.InsuranceRecord
	Identity     *document.IdentityRecord
}

// PatientName picks the best available display name: the identity card
// first, then the insurance card, then a generic fallback.
func (d Documents) PatientName() string {
	if d.Identity != nil && d.Identity.Name != "" {
		return d.Identity.Name
	}
	if d.Insurance != nil && d.Insurance.MemberName != "" {
		return d.Insurance.MemberName
	}
	return "Patient"
}

// DocumentResult reports one upload: the extracted record and whether the
// conversational layer should ask for manual entry instead.
type DocumentResult struct {
	Kind             document.Kind                `json:"kind"`
	Prescription     *document.PrescriptionRecord `json:"prescription,omitempty"`
	Insurance        *document.InsuranceRecord    `json:"insurance,omitempty"`
	Identity         *document.IdentityRecord     `json:"identity,omitempty"`
	NeedsManualInput bool                         `json:"needs_manual_input"`
	OCRError         string                       `json:"ocr_error,omitempty"`
}

// IntakeRequest carries the conversational layer's collected inputs.
type IntakeRequest struct {
	Symptoms       string `json:"symptoms"`
	MedicalHistory string `json:"medical_history"`
	Age            int    `json:"age"`
	TimePreference string `json:"time_preference"`
}

// IntakeResult is the completed pipeline output. Appointment is nil and
// SchedulingNote set when no slot could be found; the rest of the result
// is still fully formed.
type IntakeResult struct {
	SessionID      uuid.UUID               `json:"session_id"`
	Assessment     triage.Assessment       `json:"assessment"`
	Verification   *insurance.Verification `json:"insurance_verification,omitempty"`
	Appointment    *scheduling.Appointment `json:"appointment,omitempty"`
	SchedulingNote string                  `json:"scheduling_note,omitempty"`
	Guidance       *scheduling.Guidance    `json:"navigation,omitempty"`
	VisitGuide     string                  `json:"visit_guide"`
}
