// Package risk turns matched symptoms into a numeric score and then into a
// graded tier, urgency and confidence.
package risk

type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

// Rank orders tiers so callers can compare them.
func (t Tier) Rank() int {
	switch t {
	case TierHigh:
		return 2
	case TierModerate:
		return 1
	default:
		return 0
	}
}

type Urgency string

const (
	UrgencyRoutine       Urgency = "routine"
	UrgencyWithinWeek    Urgency = "within_week"
	UrgencyWithin24Hours Urgency = "within_24_hours"
	UrgencyImmediate     Urgency = "immediate"
)

const (
	MinWeek = 1
	MaxWeek = 42
)

// Patient carries the optional context that adjusts a score.
// Week is zero when unknown.
type Patient struct {
	Week                  int
	PreviousComplications bool
}

// WeekKnown reports whether Week is a plausible gestational week.
func (p Patient) WeekKnown() bool {
	return p.Week >= MinWeek && p.Week <= MaxWeek
}

// Signals is what a strategy extracted from one symptom list.
type Signals struct {
	Score           int
	MatchedHigh     []string
	MatchedModerate []string
	MatchedLow      []string
	Combinations    []string
}

type Grade struct {
	Tier       Tier
	Urgency    Urgency
	Confidence float64
}

// Evaluation is the complete scoring outcome: the raw signals, the score
// after patient adjustments, and the final grade.
type Evaluation struct {
	Signals Signals
	Score   int
	Grade   Grade
}
