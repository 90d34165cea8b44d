package triage

type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyHigh      Urgency = "high"
	UrgencyMedium    Urgency = "medium"
	UrgencyLow       Urgency = "low"
)

// Score returns the 1-4 triage score, inverse of urgency severity.
func (u Urgency) Score() int {
	switch u {
	case UrgencyEmergency:
		return 1
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 3
	default:
		return 4
	}
}

const (
	DeptEmergencyMedicine = "emergency_medicine"
	DeptCardiology        = "cardiology"
	DeptNeurology         = "neurology"
	DeptOrthopedics       = "orthopedics"
	DeptDermatology       = "dermatology"
	DeptObstetrics        = "obstetrics_gynecology"
	DeptPediatrics        = "pediatrics"
	DeptGeneralMedicine   = "general_medicine"
)

// Assessment is created once per intake and never mutated afterwards.
type Assessment struct {
	UrgencyLevel       Urgency  `json:"urgency_level"`
	Department         string   `json:"recommended_department"`
	TriageScore        int      `json:"triage_score"`
	RiskFactors        []string `json:"risk_factors"`
	ImmediateConcerns  []string `json:"immediate_concerns"`
	RecommendedActions []string `json:"recommended_actions"`
	EstimatedWaitTime  string   `json:"estimated_wait_time"`
	AssessmentNotes    string   `json:"assessment_notes"`
	FollowUpNeeded     bool     `json:"follow_up_needed"`
}
