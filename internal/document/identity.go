package document

import (
	"regexp"
	"strings"
)

var (
	capitalizedNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	idDatePattern          = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	idNumberPattern        = regexp.MustCompile(`\b[A-Z0-9]{6,}\b`)
	vidPattern             = regexp.MustCompile(`VID:\s*([A-Z0-9\s]+)`)
)

var (
	idNameLabels    = []string{"name", "full name", "given name", "surname"}
	idDOBLabels     = []string{"dob", "birth", "date of birth", "born"}
	idNumberLabels  = []string{"id", "number", "license", "card", "identification", "vid"}
	idAddressLabels = []string{"address", "street", "city", "state"}
)

// ParseIdentity extracts structured fields from OCR'd identity card text.
// Labeled lines are scanned first; if none hit, a structural pass over the
// whole text guesses name, date of birth and ID number. Captured values are
// trimmed afterwards since label splits tend to over-capture.
func ParseIdentity(raw string) IdentityRecord {
	rec := IdentityRecord{RawText: raw}

	for _, line := range Lines(raw) {
		switch {
		case containsAny(line.Lower, idNameLabels):
			if rec.Name == "" {
				rec.Name = labelValue(line.Text)
			}
		case containsAny(line.Lower, idDOBLabels):
			if rec.DateOfBirth == "" {
				rec.DateOfBirth = labelValue(line.Text)
			}
		case containsAny(line.Lower, idNumberLabels):
			if rec.IDNumber == "" {
				rec.IDNumber = labelValue(line.Text)
			}
		case containsAny(line.Lower, idAddressLabels):
			if rec.Address == "" {
				rec.Address = labelValue(line.Text)
			}
		}
	}

	if !rec.HasData() {
		scanIdentityStructure(raw, &rec)
	}

	rec.Name = trimName(rec.Name)
	rec.DateOfBirth = trimDate(rec.DateOfBirth)
	rec.IDNumber = trimIDNumber(rec.IDNumber)

	rec.Confidence = confidence(countNonEmpty(rec.Name, rec.DateOfBirth, rec.IDNumber, rec.Address), 4)
	return rec
}

// labelValue returns the part after the first colon, or the whole line when
// the label has no colon.
func labelValue(line string) string {
	if _, after, found := strings.Cut(line, ":"); found {
		return strings.TrimSpace(after)
	}
	return line
}

// scanIdentityStructure fills the record from unlabeled text: consecutive
// capitalized words as a name, date-shaped substrings as a birth date and
// alphanumeric runs as an ID number.
func scanIdentityStructure(raw string, rec *IdentityRecord) {
	rec.Name = capitalizedNamePattern.FindString(raw)

	if dates := idDatePattern.FindAllString(raw, -1); len(dates) > 0 {
		rec.DateOfBirth = dates[0]
		for _, line := range Lines(raw) {
			if containsAny(line.Lower, []string{"birth", "dob"}) {
				if d := idDatePattern.FindString(line.Text); d != "" {
					rec.DateOfBirth = d
					break
				}
			}
		}
	}

	if m := vidPattern.FindStringSubmatch(raw); m != nil {
		rec.IDNumber = strings.TrimSpace(m[1])
	} else {
		rec.IDNumber = idNumberPattern.FindString(raw)
	}
}

func trimName(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

func trimDate(date string) string {
	if !strings.Contains(date, " ") {
		return date
	}
	if d := idDatePattern.FindString(date); d != "" {
		return d
	}
	return date
}

func trimIDNumber(id string) string {
	if !strings.Contains(id, " ") {
		return id
	}
	if m := idNumberPattern.FindString(id); m != "" {
		return m
	}
	return id
}
