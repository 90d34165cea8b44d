package document

// Records are created once per uploaded document and never mutated.
// A field the parser could not find stays as its zero value; consumers treat
// empty as "not found", there is no null-vs-missing distinction.

type Kind string

const (
	KindPrescription Kind = "prescription"
	KindInsurance    Kind = "insurance"
	KindIdentity     Kind = "identity"
)

type PrescriptionRecord struct {
	Medications  []string `json:"medications"`
	DoctorName   string   `json:"doctor_name"`
	Date         string   `json:"date"`
	Instructions []string `json:"instructions"`
	RawText      string   `json:"raw_text"`
	Confidence   float64  `json:"extraction_confidence"`
}

// HasData reports whether any typed field was populated. Callers use it to
// decide between accepting the extraction and asking for manual entry.
func (r PrescriptionRecord) HasData() bool {
	return len(r.Medications) > 0 || r.DoctorName != "" || r.Date != "" || len(r.Instructions) > 0
}

type InsuranceRecord struct {
	Provider     string  `json:"provider"`
	MemberID     string  `json:"member_id"`
	MemberName   string  `json:"member_name"`
	CoverageDate string  `json:"coverage_date"`
	PolicyNumber string  `json:"policy_number"`
	GroupNumber  string  `json:"group_number"`
	RawText      string  `json:"raw_text"`
	Confidence   float64 `json:"extraction_confidence"`
}

func (r InsuranceRecord) HasData() bool {
	return r.Provider != "" || r.MemberID != "" || r.MemberName != "" ||
		r.CoverageDate != "" || r.PolicyNumber != "" || r.GroupNumber != ""
}

type IdentityRecord struct {
	Name        string  `json:"name"`
	DateOfBirth string  `json:"date_of_birth"`
	IDNumber    string  `json:"id_number"`
	Address     string  `json:"address"`
	RawText     string  `json:"raw_text"`
	Confidence  float64 `json:"extraction_confidence"`
}

func (r IdentityRecord) HasData() bool {
	return r.Name != "" || r.DateOfBirth != "" || r.IDNumber != "" || r.Address != ""
}

func confidence(populated, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(populated) / float64(total)
}

func countNonEmpty(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
