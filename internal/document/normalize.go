package document

import "strings"

// Line is one trimmed, non-empty line of OCR output, paired with its
// lower-cased form for case-insensitive matching.
type Line struct {
	Text  string
	Lower string
}

// Lines splits raw OCR text into trimmed non-empty lines in document order.
func Lines(raw string) []Line {
	var out []Line
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, Line{Text: l, Lower: strings.ToLower(l)})
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// titleWords upper-cases the first letter of each word and lowers the rest,
// matching how OCR'd all-caps names are normalized for display.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
