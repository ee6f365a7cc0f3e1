package advice

import (
	"fmt"
	"strings"

	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/risk"
)

var closings = map[risk.Tier]string{
	risk.TierHigh:     "These symptoms require immediate medical evaluation due to potential serious complications",
	risk.TierModerate: "These symptoms warrant prompt medical attention to rule out complications",
	risk.TierLow:      "These symptoms are commonly experienced during pregnancy but should be monitored",
}

// Explain renders the reasoning for an evaluation. Sentences appear in a
// fixed order and absent pieces are skipped.
func Explain(ev risk.Evaluation, kb *knowledge.Base, week int) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Risk assessment based on symptom analysis (score: %d)", ev.Score))

	if len(ev.Signals.MatchedHigh) > 0 {
		parts = append(parts, "High-risk symptoms identified: "+strings.Join(ev.Signals.MatchedHigh, ", "))
	}
	if len(ev.Signals.MatchedModerate) > 0 {
		parts = append(parts, "Moderate-risk symptoms present: "+strings.Join(ev.Signals.MatchedModerate, ", "))
	}

	for _, name := range ev.Signals.Combinations {
		parts = append(parts, "Concerning symptom pattern: "+describe(name, kb))
	}

	if s := trimester(week); s != "" {
		parts = append(parts, s)
	}

	if closing, ok := closings[ev.Grade.Tier]; ok {
		parts = append(parts, closing)
	}

	return strings.Join(parts, ". ") + "."
}

func describe(name string, kb *knowledge.Base) string {
	if kb != nil {
		if c, ok := kb.Combination(name); ok && c.Description != "" {
			return c.Description
		}
	}
	return strings.ReplaceAll(name, "_", " ")
}

func trimester(week int) string {
	switch {
	case week < risk.MinWeek || week > risk.MaxWeek:
		return ""
	case week <= 12:
		return fmt.Sprintf("First trimester (week %d) requires careful monitoring", week)
	case week < 28:
		return fmt.Sprintf("Second trimester (week %d) calls for monitoring of gestational conditions", week)
	default:
		return fmt.Sprintf("Third trimester (week %d) increases certain risks", week)
	}
}
