package guide

import (
	"regexp"
	"strings"
)

// Details are the appointment fields recovered from a free-text narrative.
// Empty means the narrative never mentioned the field.
type Details struct {
	Doctor     string `json:"doctor,omitempty"`
	Department string `json:"department,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	Location   string `json:"location,omitempty"`
	Hospital   string `json:"hospital,omitempty"`
}

// Each field has an ordered cascade of label patterns; the first pattern
// that matches wins and the rest of the cascade is skipped. Multi-group
// patterns join their captures with ", " (Building/Floor/Room).
var fieldCascades = []struct {
	assign   func(d *Details, value string)
	patterns []*regexp.Regexp
}{
	{
		func(d *Details, v string) { d.Doctor = v },
		[]*regexp.Regexp{
			regexp.MustCompile(`(?i)Doctor:\s*([^\n]+)`),
			regexp.MustCompile(`Dr\.\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
			regexp.MustCompile(`(?i)Physician:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Doctor\s*-\s*([^\n]+)`),
		},
	},
	{
		func(d *Details, v string) { d.Department = v },
		[]*regexp.Regexp{
			regexp.MustCompile(`(?i)Department:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Specialty:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Department\s*-\s*([^\n]+)`),
		},
	},
	{
		func(d *Details, v string) { d.Date = v },
		[]*regexp.Regexp{
			regexp.MustCompile(`(?i)Date:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Appointment Date:\s*([^\n]+)`),
			regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
			regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
			regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})`),
		},
	},
	{
		func(d *Details, v string) { d.Time = v },
		[]*regexp.Regexp{
			regexp.MustCompile(`(?i)Time:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Appointment Time:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM))`),
			regexp.MustCompile(`(\d{1,2}:\d{2})`),
		},
	},
	{
		func(d *Details, v string) { d.Location = v },
		[]*regexp.Regexp{
			regexp.MustCompile(`(?i)Location:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Building\s+([^,\n]+),\s*Floor\s+([^,\n]+),\s*Room\s+(\S+)`),
			regexp.MustCompile(`(?i)Building:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Floor:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Room:?\s+([^\n]+)`),
		},
	},
	{
		func(d *Details, v string) { d.Hospital = v },
		[]*regexp.Regexp{
			regexp.MustCompile(`(?i)Hospital:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Facility:\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Medical Center:\s*([^\n]+)`),
			regexp.MustCompile(`([A-Z][a-z]+\s+General\s+Hospital)`),
			regexp.MustCompile(`([A-Z][a-z]+\s+Medical\s+Center)`),
		},
	},
}

// ParseNarrative recovers structured appointment fields from a narrative
// the upstream generation step produced instead of machine-readable output.
// Fields are independent; a miss on one does not affect the others.
func ParseNarrative(text string) Details {
	var d Details
	for _, cascade := range fieldCascades {
		for _, pattern := range cascade.patterns {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			var parts []string
			for _, g := range m[1:] {
				if g = strings.TrimSpace(g); g != "" {
					parts = append(parts, g)
				}
			}
			if len(parts) > 0 {
				cascade.assign(&d, strings.Join(parts, ", "))
			}
			break
		}
	}
	return d
}

var narrativeKeywords = []string{
	"appointment", "doctor", "department", "date", "time",
	"neurology", "cardiology", "dermatology", "building", "floor", "room",
}

// Resolver decides whether a narrative is substantial enough to show to the
// patient verbatim.
type Resolver struct {
	// minNarrativeLen is the length below which a narrative is treated as
	// boilerplate. Heuristic threshold, kept configurable.
	minNarrativeLen int
}

func NewResolver(minNarrativeLen int) *Resolver {
	return &Resolver{minNarrativeLen: minNarrativeLen}
}

// HasRealData reports whether the narrative is long enough and mentions at
// least one appointment-domain keyword.
func (r *Resolver) HasRealData(narrative string) bool {
	trimmed := strings.TrimSpace(narrative)
	if len(trimmed) <= r.minNarrativeLen {
		return false
	}
	return containsAny(strings.ToLower(trimmed), narrativeKeywords)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
