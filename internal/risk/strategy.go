package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/match"
	"github.com/gzhole/gravilog/internal/normalize"
)

const (
	HighWeight     = 3
	ModerateWeight = 2
	LowWeight      = 1

	// CombinationBonus is added once when at least one dangerous
	// combination fires, however many do.
	CombinationBonus = 5
)

// Strategy scores a symptom list against a knowledge base.
type Strategy interface {
	// Name returns the strategy's identifier (e.g. "phrase", "pattern").
	Name() string

	// Score must be deterministic for fixed inputs.
	Score(symptoms []string, kb *knowledge.Base) Signals
}

const DefaultStrategy = "phrase"

var strategies = map[string]func() Strategy{
	"phrase":  func() Strategy { return PhraseStrategy{} },
	"pattern": func() Strategy { return PatternStrategy{} },
}

// StrategyByName returns the named strategy. An empty name selects the
// default.
func StrategyByName(name string) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	build, ok := strategies[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown scoring strategy %q (available: %s)", name, strings.Join(StrategyNames(), ", "))
	}
	return build(), nil
}

// StrategyNames lists the registered strategies in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PhraseStrategy matches every symptom against each category's phrases
// with the severity-aware matcher. The category passes are independent, so
// one symptom can contribute to more than one category.
type PhraseStrategy struct{}

func (PhraseStrategy) Name() string { return "phrase" }

func (PhraseStrategy) Score(symptoms []string, kb *knowledge.Base) Signals {
	var s Signals

	passes := []struct {
		phrases []string
		weight  int
		matched *[]string
	}{
		{kb.High, HighWeight, &s.MatchedHigh},
		{kb.Moderate, ModerateWeight, &s.MatchedModerate},
		{kb.Low, LowWeight, &s.MatchedLow},
	}

	for _, p := range passes {
		for _, symptom := range symptoms {
			phrase, ok := match.Any(symptom, p.phrases)
			if !ok {
				continue
			}
			s.Score += p.weight
			*p.matched = appendUnique(*p.matched, phrase)
		}
	}

	s.Combinations = DetectCombinations(symptoms, kb.Combinations)
	if len(s.Combinations) > 0 {
		s.Score += CombinationBonus
	}
	return s
}

// PatternStrategy looks for keyword groups anywhere in the combined
// symptom text. It does not detect combinations.
type PatternStrategy struct{}

func (PatternStrategy) Name() string { return "pattern" }

func (PatternStrategy) Score(symptoms []string, kb *knowledge.Base) Signals {
	var s Signals
	text := strings.Join(normalize.All(symptoms), " ")
	if text == "" {
		return s
	}

	for _, p := range kb.HighPatterns {
		if patternPresent(text, p) {
			s.Score += HighWeight
			s.MatchedHigh = appendUnique(s.MatchedHigh, strings.Join(p, " + "))
		}
	}
	for _, p := range kb.ModeratePatterns {
		if patternPresent(text, p) {
			s.Score += ModerateWeight
			s.MatchedModerate = appendUnique(s.MatchedModerate, strings.Join(p, " + "))
		}
	}
	return s
}

func patternPresent(text string, p knowledge.Pattern) bool {
	if len(p) == 0 {
		return false
	}
	for _, word := range p {
		if !strings.Contains(text, strings.ToLower(word)) {
			return false
		}
	}
	return true
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
