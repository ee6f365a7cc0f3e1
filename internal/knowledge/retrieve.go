package knowledge

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultRetrieveLimit caps the paragraphs returned by Retrieve.
const DefaultRetrieveLimit = 5

var retrieveStopwords = map[string]bool{
	"and": true, "the": true, "with": true, "for": true, "from": true,
	"are": true, "was": true, "has": true, "have": true, "not": true,
	"but": true, "per": true, "day": true, "week": true, "weeks": true,
}

// Retrieve returns corpus paragraphs that mention any word of terms, in
// corpus order, without duplicates and at most limit of them. Short words
// and stopwords are ignored. The result is context for a reader, it is
// never used for scoring.
func (b *Base) Retrieve(terms []string, limit int) []string {
	if b == nil || b.Corpus == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultRetrieveLimit
	}

	words := queryWords(terms)
	if len(words) == 0 {
		return nil
	}

	corpus := strings.ReplaceAll(b.Corpus, "\r\n", "\n")
	seen := make(map[string]bool)
	var out []string
	for _, para := range strings.Split(corpus, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || seen[para] {
			continue
		}
		lower := strings.ToLower(para)
		for _, w := range words {
			if strings.Contains(lower, w) {
				seen[para] = true
				out = append(out, para)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func queryWords(terms []string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, term := range terms {
		fields := strings.FieldsFunc(strings.ToLower(term), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, f := range fields {
			if utf8.RuneCountInString(f) < 3 || retrieveStopwords[f] || seen[f] {
				continue
			}
			seen[f] = true
			words = append(words, f)
		}
	}
	return words
}
