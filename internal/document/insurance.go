package document

import (
	"regexp"
	"strings"
)

var (
	upperNamePattern    = regexp.MustCompile(`[A-Z][A-Z\s]+`)
	memberIDPattern     = regexp.MustCompile(`[A-Z0-9-]+`)
	coverageDatePattern = regexp.MustCompile(`\d{2}-\d{2}-\d{4}`)
	policyNumberPattern = regexp.MustCompile(`(?i)policy\s*(?:number|#|no\.?)\s*:?\s*([A-Z0-9\-]+)`)
	groupNumberPattern  = regexp.MustCompile(`(?i)group\s*(?:number|#|no\.?)\s*:?\s*([A-Z0-9\-]+)`)
)

var knownProviderTokens = []string{"blue cross", "aetna", "cigna", "united"}

// Bilingual labels as printed on Medicare cards.
var (
	memberIDLabels     = []string{"medicare number", "número de medicare", "numero de medicare"}
	coverageDateLabels = []string{"coverage starts", "cobertura empieza"}
)

// ParseInsurance extracts structured fields from OCR'd insurance card text.
// Known provider names take precedence over generic labels; every scalar
// field keeps its first match.
func ParseInsurance(raw string) InsuranceRecord {
	rec := InsuranceRecord{RawText: raw}

	for _, line := range Lines(raw) {
		switch {
		case strings.Contains(line.Lower, "medicare health insurance"):
			if rec.Provider == "" {
				rec.Provider = "Medicare Health Insurance"
			}

		case containsAny(line.Lower, knownProviderTokens):
			if rec.Provider == "" {
				rec.Provider = line.Text
			}

		case strings.Contains(line.Lower, "name/nombre"):
			if rec.MemberName == "" {
				if _, after, found := strings.Cut(line.Text, ":"); found {
					rec.MemberName = strings.TrimSpace(upperNamePattern.FindString(after))
				}
			}

		case containsAny(line.Lower, memberIDLabels):
			if rec.MemberID == "" {
				if _, after, found := strings.Cut(line.Text, ":"); found {
					rec.MemberID = memberIDPattern.FindString(strings.TrimSpace(after))
				}
			}

		case containsAny(line.Lower, coverageDateLabels):
			if rec.CoverageDate == "" {
				if _, after, found := strings.Cut(line.Text, ":"); found {
					rec.CoverageDate = coverageDatePattern.FindString(after)
				}
			}
		}

		if rec.PolicyNumber == "" {
			if m := policyNumberPattern.FindStringSubmatch(line.Text); m != nil {
				rec.PolicyNumber = m[1]
			}
		}
		if rec.GroupNumber == "" {
			if m := groupNumberPattern.FindStringSubmatch(line.Text); m != nil {
				rec.GroupNumber = m[1]
			}
		}
	}

	rec.Confidence = confidence(countNonEmpty(
		rec.Provider, rec.MemberID, rec.MemberName,
		rec.CoverageDate, rec.PolicyNumber, rec.GroupNumber,
	), 6)
	return rec
}
