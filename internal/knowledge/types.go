// Package knowledge holds the symptom guideline table the risk scorer reads:
// categorized symptom phrases, dangerous symptom combinations, keyword
// pattern groups and the raw guideline text used for context retrieval.
package knowledge

import (
	"errors"
	"fmt"
)

type Category string

const (
	CategoryHigh     Category = "high"
	CategoryModerate Category = "moderate"
	CategoryLow      Category = "low"
)

// CombinationRule decides how many of a combination's keywords must be
// present for it to fire.
type CombinationRule string

const (
	// RuleAll fires only when every keyword appears in some symptom.
	RuleAll CombinationRule = "all"
	// RuleMajority fires when at least MinMatches keywords appear.
	RuleMajority CombinationRule = "majority"
)

const defaultMajority = 2

var (
	ErrIncomplete = errors.New("knowledge base has an empty symptom category")
	ErrNoSource   = errors.New("no knowledge base file found")
)

// Base is the loaded knowledge table. It is built once and treated as
// read-only by everything downstream.
type Base struct {
	High     []string `yaml:"high"`
	Moderate []string `yaml:"moderate"`
	Low      []string `yaml:"low"`

	Combinations []Combination `yaml:"combinations"`

	HighPatterns     []Pattern `yaml:"high_patterns"`
	ModeratePatterns []Pattern `yaml:"moderate_patterns"`

	// Corpus is the guideline text paragraphs are retrieved from.
	Corpus string `yaml:"corpus,omitempty"`

	// Source names where the table came from: a file path or "builtin".
	Source string `yaml:"-"`
}

// Combination is a named cluster of symptom keywords whose joint presence
// signals a specific complication.
type Combination struct {
	Name        string          `yaml:"name"`
	Keywords    []string        `yaml:"keywords"`
	Rule        CombinationRule `yaml:"rule"`
	MinMatches  int             `yaml:"min_matches,omitempty"`
	Description string          `yaml:"description,omitempty"`
	Advice      string          `yaml:"advice,omitempty"`
}

// Required returns the number of keywords that must be present.
func (c Combination) Required() int {
	if c.Rule == RuleMajority {
		n := c.MinMatches
		if n <= 0 {
			n = defaultMajority
		}
		if n > len(c.Keywords) {
			n = len(c.Keywords)
		}
		return n
	}
	return len(c.Keywords)
}

// Pattern is a group of keywords that must all occur in the symptom text.
type Pattern []string

// Phrases returns the phrase list for a category.
func (b *Base) Phrases(c Category) []string {
	switch c {
	case CategoryHigh:
		return b.High
	case CategoryModerate:
		return b.Moderate
	case CategoryLow:
		return b.Low
	default:
		return nil
	}
}

// Validate reports whether the table can be scored against.
func (b *Base) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil knowledge base", ErrIncomplete)
	}
	for _, c := range []Category{CategoryHigh, CategoryModerate, CategoryLow} {
		if len(b.Phrases(c)) == 0 {
			return fmt.Errorf("%w: %s", ErrIncomplete, c)
		}
	}
	for _, combo := range b.Combinations {
		if err := combo.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Combination) validate() error {
	if c.Name == "" || len(c.Keywords) == 0 {
		return fmt.Errorf("invalid combination %q: name and keywords are required", c.Name)
	}
	switch c.Rule {
	case RuleAll, RuleMajority:
	default:
		return fmt.Errorf("invalid combination %q: unknown rule %q", c.Name, c.Rule)
	}
	return nil
}

// Combination looks up a combination by name.
func (b *Base) Combination(name string) (Combination, bool) {
	for _, c := range b.Combinations {
		if c.Name == name {
			return c, true
		}
	}
	return Combination{}, false
}

// Clone returns a deep copy.
func (b *Base) Clone() *Base {
	clone := &Base{
		High:     append([]string(nil), b.High...),
		Moderate: append([]string(nil), b.Moderate...),
		Low:      append([]string(nil), b.Low...),
		Corpus:   b.Corpus,
		Source:   b.Source,
	}

	clone.Combinations = make([]Combination, len(b.Combinations))
	for i, c := range b.Combinations {
		c.Keywords = append([]string(nil), c.Keywords...)
		clone.Combinations[i] = c
	}

	clone.HighPatterns = clonePatterns(b.HighPatterns)
	clone.ModeratePatterns = clonePatterns(b.ModeratePatterns)
	return clone
}

func clonePatterns(in []Pattern) []Pattern {
	out := make([]Pattern, len(in))
	for i, p := range in {
		out[i] = append(Pattern(nil), p...)
	}
	return out
}
