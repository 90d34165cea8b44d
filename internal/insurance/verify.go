package insurance

import (
	"strings"
	"time"

	"patient-intake/internal/document"
)

type Status string

const (
	StatusVerified Status = "verified"
	StatusInvalid  Status = "invalid"
	StatusFailed   Status = "failed"
)

type Copay struct {
	Consultation    string `json:"consultation"`
	DiagnosticTests string `json:"diagnostic_tests"`
}

type Coverage struct {
	Consultation      string `json:"consultation"`
	DiagnosticTests   string `json:"diagnostic_tests"`
	Medications       string `json:"medications"`
	EmergencyServices string `json:"emergency_services"`
	Copay             Copay  `json:"copay"`
}

// Verification is the outcome of one eligibility check. On failure the
// Reason and Recommendations fields carry what the patient should fix.
type Verification struct {
	PolicyNumber    string    `json:"policy_number"`
	Provider        string    `json:"provider"`
	Status          Status    `json:"verification_status"`
	Reason          string    `json:"reason,omitempty"`
	PolicyHolder    string    `json:"policy_holder,omitempty"`
	ValidityDate    string    `json:"validity_date,omitempty"`
	Coverage        *Coverage `json:"coverage_details,omitempty"`
	Deductible      string    `json:"deductible,omitempty"`
	OutOfPocketMax  string    `json:"out_of_pocket_max,omitempty"`
	NetworkStatus   string    `json:"network_status,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	VerifiedAt      time.Time `json:"verification_timestamp"`
}

const minPolicyNumberLen = 6

// providerCoverage keys are matched as substrings of the lower-cased
// provider name; unmatched providers get the default plan.
var providerCoverage = []struct {
	key      string
	coverage Coverage
}{
	{"blue cross", Coverage{
		Consultation:      "80% covered",
		DiagnosticTests:   "90% covered",
		Medications:       "70% covered",
		EmergencyServices: "100% covered",
		Copay:             Copay{Consultation: "$25", DiagnosticTests: "$50"},
	}},
	{"aetna", Coverage{
		Consultation:      "85% covered",
		DiagnosticTests:   "85% covered",
		Medications:       "75% covered",
		EmergencyServices: "100% covered",
		Copay:             Copay{Consultation: "$20", DiagnosticTests: "$40"},
	}},
	{"cigna", Coverage{
		Consultation:      "90% covered",
		DiagnosticTests:   "95% covered",
		Medications:       "80% covered",
		EmergencyServices: "100% covered",
		Copay:             Copay{Consultation: "$15", DiagnosticTests: "$30"},
	}},
}

var defaultCoverage = Coverage{
	Consultation:      "75% covered",
	DiagnosticTests:   "80% covered",
	Medications:       "65% covered",
	EmergencyServices: "100% covered",
	Copay:             Copay{Consultation: "$30", DiagnosticTests: "$60"},
}

type Verifier struct {
	now func() time.Time
}

func NewVerifier(now func() time.Time) *Verifier {
	return &Verifier{now: now}
}

// Verify checks policy eligibility against the provider coverage tables.
func (v *Verifier) Verify(policyNumber, provider string) Verification {
	if len(policyNumber) < minPolicyNumberLen {
		return Verification{
			PolicyNumber: policyNumber,
			Provider:     provider,
			Status:       StatusInvalid,
			Reason:       "Invalid policy number format",
			VerifiedAt:   v.now(),
		}
	}

	coverage := defaultCoverage
	providerLower := strings.ToLower(provider)
	for _, entry := range providerCoverage {
		if strings.Contains(providerLower, entry.key) {
			coverage = entry.coverage
			break
		}
	}

	return Verification{
		PolicyNumber:   policyNumber,
		Provider:       provider,
		Status:         StatusVerified,
		PolicyHolder:   "Verified",
		ValidityDate:   "2025-12-31",
		Coverage:       &coverage,
		Deductible:     "$500",
		OutOfPocketMax: "$2000",
		NetworkStatus:  "In-network",
		VerifiedAt:     v.now(),
	}
}

// VerifyRecord runs verification off an extracted insurance card. The member
// ID stands in for the policy number when the card has no explicit one.
func (v *Verifier) VerifyRecord(rec document.InsuranceRecord) Verification {
	policyNumber := rec.PolicyNumber
	if policyNumber == "" {
		policyNumber = rec.MemberID
	}

	if policyNumber == "" || rec.Provider == "" {
		return Verification{
			PolicyNumber: policyNumber,
			Provider:     rec.Provider,
			Status:       StatusFailed,
			Reason:       "Could not extract policy number or provider from insurance card",
			Recommendations: []string{
				"Please ensure the insurance card image is clear and readable",
				"Check that the policy number and provider name are visible",
				"Try uploading a higher resolution image",
			},
			VerifiedAt: v.now(),
		}
	}

	return v.Verify(policyNumber, rec.Provider)
}
