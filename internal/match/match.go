// Package match decides whether a caller-reported symptom corresponds to a
// knowledge base phrase.
package match

import (
	"strings"

	"github.com/gzhole/gravilog/internal/normalize"
)

var stopwords = map[string]bool{
	"and": true, "or": true, "the": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "with": true,
}

// Matches reports whether userSymptom corresponds to the knowledge entry.
//
// Severity is respected in both directions: a "severe" entry needs a
// severe or heavy report, and a "mild" entry rejects one. Past that guard
// the modifier-free cores match when they share a non-stopword or one
// contains the other. An empty core never matches.
func Matches(userSymptom, entry string) bool {
	user := normalize.Normalize(userSymptom)
	kb := normalize.Normalize(entry)
	if user.Text == "" || kb.Text == "" {
		return false
	}

	userSevere := strings.Contains(user.Text, "severe") || strings.Contains(user.Text, "heavy")
	if strings.Contains(kb.Text, "severe") && !userSevere {
		return false
	}
	if strings.Contains(kb.Text, "mild") && userSevere {
		return false
	}

	if user.Core == "" || kb.Core == "" {
		return false
	}

	if sharesWord(user.Words, kb.Words) {
		return true
	}
	return strings.Contains(user.Core, kb.Core) || strings.Contains(kb.Core, user.Core)
}

// Any returns the first entry userSymptom matches.
func Any(userSymptom string, entries []string) (string, bool) {
	for _, e := range entries {
		if Matches(userSymptom, e) {
			return e, true
		}
	}
	return "", false
}

func sharesWord(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, w := range a {
		if !stopwords[w] {
			set[w] = true
		}
	}
	for _, w := range b {
		if set[w] {
			return true
		}
	}
	return false
}
