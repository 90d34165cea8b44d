package document

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	medicationPattern = regexp.MustCompile(`([A-Za-z]+)\s+(\d+)\s*mg\s*[a-z]+`)
	dateValuePattern  = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

var drugNameTokens = []string{"amoxicillin", "anoxicillin", "ibuprofen", "paracetamol"}

var medicationUnitTokens = []string{"mg", "tablet", "capsule"}

// instructionPhrases maps prescription shorthand to the plain-language
// instruction shown to the patient. Ordered so output order is stable.
var instructionPhrases = []struct {
	token  string
	phrase string
}{
	{"p.o.", "Take by mouth"},
	{"b.i.d", "Twice daily"},
	{"t.i.d", "Three times daily"},
	{"q.d.", "Once daily"},
	{"p.r.n", "As needed"},
}

var instructionTriggers = []string{"p.o.", "t.i.d", "b.i.d", "q.d.", "p.r.n", "take", "use"}

// ParsePrescription extracts structured fields from OCR'd prescription text.
// Scalar fields keep the first match; medications and instructions accumulate
// in document order. It never fails: unmatched fields stay empty.
func ParsePrescription(raw string) PrescriptionRecord {
	rec := PrescriptionRecord{RawText: raw}

	for _, line := range Lines(raw) {
		switch {
		case containsAny(line.Lower, drugNameTokens) || containsAny(line.Lower, medicationUnitTokens):
			if med := extractMedication(line); med != "" {
				rec.Medications = append(rec.Medications, med)
			}

		case strings.Contains(line.Lower, "doctor"):
			if rec.DoctorName == "" {
				rec.DoctorName = extractDoctorName(line.Lower)
			}

		case containsAny(line.Lower, instructionTriggers):
			for _, ip := range instructionPhrases {
				if strings.Contains(line.Lower, ip.token) {
					rec.Instructions = append(rec.Instructions, ip.phrase)
				}
			}

		case strings.Contains(line.Lower, "date:"):
			if rec.Date == "" {
				_, after, _ := strings.Cut(line.Text, ":")
				rec.Date = dateValuePattern.FindString(after)
			}
		}
	}

	populated := countNonEmpty(rec.DoctorName, rec.Date)
	if len(rec.Medications) > 0 {
		populated++
	}
	if len(rec.Instructions) > 0 {
		populated++
	}
	rec.Confidence = confidence(populated, 4)
	return rec
}

// extractMedication reduces a noisy medication line to the canonical
// "<Name> <dose> mg tablets" form.
func extractMedication(line Line) string {
	if m := medicationPattern.FindStringSubmatch(line.Text); m != nil {
		return fmt.Sprintf("%s %s mg tablets", titleWord(m[1]), m[2])
	}

	// Fallback: positional scan around a known drug-name token.
	words := strings.Fields(line.Text)
	for i, w := range words {
		if !containsAny(strings.ToLower(w), drugNameTokens) {
			continue
		}
		if i+2 < len(words) && strings.Contains(strings.ToLower(words[i+2]), "mg") {
			return fmt.Sprintf("%s %s mg tablets", titleWord(w), words[i+1])
		}
		break
	}
	return ""
}

func extractDoctorName(lower string) string {
	_, after, found := strings.Cut(lower, "doctor")
	if !found {
		return ""
	}
	after = strings.TrimLeft(after, ":- ")
	words := strings.Fields(after)
	if len(words) == 0 {
		return ""
	}
	if len(words) > 3 {
		words = words[:3]
	}
	return "Dr. " + titleWords(strings.Join(words, " "))
}
