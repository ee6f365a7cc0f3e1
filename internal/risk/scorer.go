package risk

import (
	"math"
	"strings"

	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/normalize"
)

const (
	HighThreshold     = 6
	ModerateThreshold = 3
)

// DetectCombinations returns the names of the combinations present in
// symptoms, in knowledge base order. A keyword counts as present when it
// is a substring of any normalized symptom.
func DetectCombinations(symptoms []string, combos []knowledge.Combination) []string {
	normalized := normalize.All(symptoms)
	if len(normalized) == 0 {
		return nil
	}

	var fired []string
	for _, c := range combos {
		if len(c.Keywords) == 0 {
			continue
		}
		present := 0
		for _, kw := range c.Keywords {
			if anyContains(normalized, strings.ToLower(kw)) {
				present++
			}
		}
		if present >= c.Required() {
			fired = append(fired, c.Name)
		}
	}
	return fired
}

// Adjust applies gestational-week and history adjustments to score.
// Week-dependent rules only apply when the week is known.
func Adjust(score int, symptoms []string, p Patient) int {
	normalized := normalize.All(symptoms)

	if p.WeekKnown() {
		if p.Week < 12 && anyContains(normalized, "bleeding") {
			score += 2
		}
		if anyContains(normalized, "contractions") {
			if p.Week >= 37 {
				score++
			} else {
				score += 3
			}
		}
	}
	if p.PreviousComplications {
		score++
	}
	return score
}

// Threshold maps a score to its base grade.
func Threshold(score int) Grade {
	s := float64(score)
	switch {
	case score >= HighThreshold:
		return Grade{
			Tier:       TierHigh,
			Urgency:    UrgencyImmediate,
			Confidence: round2(math.Min(0.90, 0.70+0.05*(s-HighThreshold))),
		}
	case score >= ModerateThreshold:
		return Grade{
			Tier:       TierModerate,
			Urgency:    UrgencyWithin24Hours,
			Confidence: round2(math.Min(0.80, 0.60+0.05*(s-ModerateThreshold))),
		}
	default:
		if s < 0 {
			s = 0
		}
		return Grade{
			Tier:       TierLow,
			Urgency:    UrgencyRoutine,
			Confidence: round2(math.Min(0.70, 0.50+0.10*s)),
		}
	}
}

// Escalate only ever raises a grade. Moderate risk early or late in
// pregnancy becomes high; low risk with prior complications becomes
// moderate with a within-week follow-up.
func Escalate(g Grade, p Patient) Grade {
	if g.Tier == TierModerate && p.WeekKnown() && (p.Week <= 12 || p.Week >= 28) {
		g.Tier = TierHigh
	}
	if g.Tier == TierLow && p.PreviousComplications {
		g.Tier = TierModerate
		g.Urgency = UrgencyWithinWeek
	}
	return g
}

// Scorer runs one strategy and the shared adjustment pipeline.
type Scorer struct {
	strategy Strategy
}

// NewScorer returns a scorer using s, or the phrase strategy when s is nil.
func NewScorer(s Strategy) *Scorer {
	if s == nil {
		s = PhraseStrategy{}
	}
	return &Scorer{strategy: s}
}

func (sc *Scorer) Strategy() Strategy { return sc.strategy }

// Evaluate scores symptoms and grades the adjusted score.
func (sc *Scorer) Evaluate(symptoms []string, kb *knowledge.Base, p Patient) Evaluation {
	signals := sc.strategy.Score(symptoms, kb)
	score := Adjust(signals.Score, symptoms, p)
	return Evaluation{
		Signals: signals,
		Score:   score,
		Grade:   Escalate(Threshold(score), p),
	}
}

func anyContains(texts []string, sub string) bool {
	if sub == "" {
		return false
	}
	for _, t := range texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
