package knowledge

import (
	"bufio"
	"fmt"
	"strings"
	"unicode"
)

// Section maps a corpus header to the category its bullet lines feed.
// A Section with an empty Category terminates the current section.
type Section struct {
	Header   string
	Category Category
}

// DefaultSchema recognizes the headers used by the guideline corpora shipped
// with the project.
var DefaultSchema = []Section{
	{Header: "HIGH RISK / EMERGENCY SYMPTOMS:", Category: CategoryHigh},
	{Header: "HIGH RISK SYMPTOMS:", Category: CategoryHigh},
	{Header: "MEDIUM RISK INDICATORS:", Category: CategoryModerate},
	{Header: "MEDIUM RISK SYMPTOMS:", Category: CategoryModerate},
	{Header: "NORMAL (LOW RISK) SYMPTOMS:", Category: CategoryLow},
	{Header: "LOW RISK SYMPTOMS:", Category: CategoryLow},
	{Header: "RISK FACTORS"},
}

// Parse extracts categorized symptom phrases from a section-headed,
// bullet-listed text corpus. Combinations and patterns are left empty.
// If any category ends up empty the partial table is returned together
// with ErrIncomplete.
func Parse(text string, schema []Section) (*Base, error) {
	kb := &Base{Corpus: text}

	var current Category
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if section, ok := matchHeader(line, schema); ok {
			current = section.Category
			continue
		}
		if isHeading(line) {
			current = ""
			continue
		}

		if current == "" || !strings.HasPrefix(line, "-") {
			continue
		}
		entry := strings.TrimSpace(strings.TrimPrefix(line, "-"))
		if entry == "" {
			continue
		}
		switch current {
		case CategoryHigh:
			kb.High = append(kb.High, entry)
		case CategoryModerate:
			kb.Moderate = append(kb.Moderate, entry)
		case CategoryLow:
			kb.Low = append(kb.Low, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	for _, c := range []Category{CategoryHigh, CategoryModerate, CategoryLow} {
		if len(kb.Phrases(c)) == 0 {
			return kb, fmt.Errorf("%w: no %s entries in corpus", ErrIncomplete, c)
		}
	}
	return kb, nil
}

func matchHeader(line string, schema []Section) (Section, bool) {
	upper := strings.ToUpper(line)
	for _, s := range schema {
		if strings.HasPrefix(upper, s.Header) {
			return s, true
		}
	}
	return Section{}, false
}

// isHeading reports an all-caps line ending in a colon.
func isHeading(line string) bool {
	if !strings.HasSuffix(line, ":") || strings.HasPrefix(line, "-") {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
