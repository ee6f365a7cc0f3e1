// Package normalize turns caller-supplied symptom text into the canonical
// forms the matcher and scorers compare against.
package normalize

import (
	"strings"
	"unicode"
)

// Modifiers are the severity qualifiers removed when extracting core terms.
var Modifiers = []string{"severe", "mild", "heavy"}

// NormalizedSymptom is one symptom string in its comparison forms.
type NormalizedSymptom struct {
	Raw   string
	Text  string   // lowercased, trimmed, invisible characters removed
	Core  string   // Text without severity modifiers
	Words []string // whitespace tokens of Core
}

// Symptom lowercases s, drops zero-width and control characters, and
// collapses runs of whitespace to a single space.
func Symptom(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		if isInvisible(r) {
			continue
		}
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Core strips the severity modifier words from already-normalized text.
func Core(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, f := range fields {
		if !isModifier(f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// Normalize builds every comparison form of a raw symptom.
func Normalize(raw string) NormalizedSymptom {
	text := Symptom(raw)
	core := Core(text)
	return NormalizedSymptom{
		Raw:   raw,
		Text:  text,
		Core:  core,
		Words: strings.Fields(core),
	}
}

// All normalizes a list of symptoms, dropping entries that are empty after
// normalization.
func All(symptoms []string) []string {
	out := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if n := Symptom(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func isModifier(word string) bool {
	for _, m := range Modifiers {
		if word == m {
			return true
		}
	}
	return false
}

// isInvisible reports zero-width, bidi-control and other format/control
// characters that render as nothing but break substring comparisons.
func isInvisible(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff', '\u00ad':
		return true
	}
	if unicode.IsSpace(r) {
		return false
	}
	return unicode.Is(unicode.Cf, r) || unicode.IsControl(r)
}
