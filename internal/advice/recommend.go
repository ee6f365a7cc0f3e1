// Package advice renders scoring outcomes as recommendations and a
// readable explanation.
package advice

import (
	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/risk"
)

// MaxRecommendations caps the list returned by Recommend.
const MaxRecommendations = 5

const highRiskFlag = "High-risk symptom combinations detected - immediate evaluation needed"

var baseDirectives = map[risk.Tier][]string{
	risk.TierHigh: {
		"Seek immediate medical attention or go to the emergency room",
		"Contact your healthcare provider immediately",
		"Do not delay seeking medical care",
	},
	risk.TierModerate: {
		"Contact your healthcare provider within 24-48 hours",
		"Monitor symptoms closely and document any changes",
		"Avoid strenuous activities until evaluated by your provider",
	},
	risk.TierLow: {
		"Continue routine prenatal care as scheduled",
		"Monitor symptoms and contact provider if they worsen",
		"Maintain healthy pregnancy practices (rest, nutrition, hydration)",
	},
}

// Recommend builds the ordered recommendation list: tier directives,
// week guidance, one line per fired combination, then a generic flag when
// any high-risk phrase matched. The list is truncated, never reordered.
// A week of zero means unknown.
func Recommend(tier risk.Tier, signals risk.Signals, kb *knowledge.Base, week int) []string {
	base, ok := baseDirectives[tier]
	if !ok {
		base = baseDirectives[risk.TierModerate]
	}
	recs := append([]string(nil), base...)

	if line := weekGuidance(tier, week); line != "" {
		recs = append(recs, line)
	}

	for _, name := range signals.Combinations {
		if kb == nil {
			break
		}
		if c, ok := kb.Combination(name); ok && c.Advice != "" {
			recs = append(recs, c.Advice)
		}
	}

	if len(signals.MatchedHigh) > 0 {
		recs = append(recs, highRiskFlag)
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func weekGuidance(tier risk.Tier, week int) string {
	if week < risk.MinWeek || week > risk.MaxWeek {
		return ""
	}
	switch tier {
	case risk.TierHigh:
		if week < 20 {
			return "Early pregnancy complications require immediate specialist care"
		}
		if week >= 28 {
			return "Late pregnancy symptoms require immediate fetal monitoring"
		}
	case risk.TierModerate:
		if week >= 28 {
			return "Monitor fetal movement patterns daily"
		}
	}
	return ""
}
