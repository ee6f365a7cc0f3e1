package risk

import (
	"reflect"
	"testing"

	"github.com/gzhole/gravilog/internal/knowledge"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{0, Grade{TierLow, UrgencyRoutine, 0.5}},
		{1, Grade{TierLow, UrgencyRoutine, 0.6}},
		{2, Grade{TierLow, UrgencyRoutine, 0.7}},
		{3, Grade{TierModerate, UrgencyWithin24Hours, 0.6}},
		{5, Grade{TierModerate, UrgencyWithin24Hours, 0.7}},
		{6, Grade{TierHigh, UrgencyImmediate, 0.7}},
		{7, Grade{TierHigh, UrgencyImmediate, 0.75}},
		{11, Grade{TierHigh, UrgencyImmediate, 0.9}},
		{40, Grade{TierHigh, UrgencyImmediate, 0.9}},
	}

	for _, tt := range tests {
		if got := Threshold(tt.score); got != tt.want {
			t.Errorf("Threshold(%d) = %+v, want %+v", tt.score, got, tt.want)
		}
	}
}

func TestEscalate(t *testing.T) {
	moderate := Grade{TierModerate, UrgencyWithin24Hours, 0.6}
	low := Grade{TierLow, UrgencyRoutine, 0.7}

	tests := []struct {
		name    string
		grade   Grade
		patient Patient
		want    Tier
		urgency Urgency
	}{
		{"early pregnancy", moderate, Patient{Week: 10}, TierHigh, UrgencyWithin24Hours},
		{"week 12 boundary", moderate, Patient{Week: 12}, TierHigh, UrgencyWithin24Hours},
		{"mid pregnancy", moderate, Patient{Week: 20}, TierModerate, UrgencyWithin24Hours},
		{"late pregnancy", moderate, Patient{Week: 28}, TierHigh, UrgencyWithin24Hours},
		{"unknown week", moderate, Patient{}, TierModerate, UrgencyWithin24Hours},
		{"out of range week", moderate, Patient{Week: 60}, TierModerate, UrgencyWithin24Hours},
		{"complications raise low", low, Patient{PreviousComplications: true}, TierModerate, UrgencyWithinWeek},
		{"low stays low", low, Patient{Week: 8}, TierLow, UrgencyRoutine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Escalate(tt.grade, tt.patient)
			if got.Tier != tt.want || got.Urgency != tt.urgency {
				t.Errorf("Escalate() = %s/%s, want %s/%s", got.Tier, got.Urgency, tt.want, tt.urgency)
			}
			if got.Confidence != tt.grade.Confidence {
				t.Error("confidence must be preserved")
			}
		})
	}
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []string
		patient  Patient
		want     int
	}{
		{"no context", []string{"bleeding"}, Patient{}, 0},
		{"early bleeding", []string{"Light bleeding"}, Patient{Week: 8}, 2},
		{"bleeding later", []string{"bleeding"}, Patient{Week: 12}, 0},
		{"term contractions", []string{"contractions"}, Patient{Week: 38}, 1},
		{"preterm contractions", []string{"regular contractions"}, Patient{Week: 30}, 3},
		{"contractions unknown week", []string{"contractions"}, Patient{}, 0},
		{"previous complications", nil, Patient{PreviousComplications: true}, 1},
		{"everything", []string{"bleeding", "contractions"}, Patient{Week: 9, PreviousComplications: true}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjust(0, tt.symptoms, tt.patient); got != tt.want {
				t.Errorf("Adjust() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDetectCombinations(t *testing.T) {
	combos := knowledge.Builtin().Combinations

	tests := []struct {
		name     string
		symptoms []string
		want     []string
	}{
		{"preeclampsia needs all", []string{"severe headache", "blurry vision"}, nil},
		{"preeclampsia", []string{"Severe headache", "blurry vision", "swelling in feet"}, []string{"preeclampsia"}},
		{"miscarriage majority", []string{"bleeding", "cramping"}, []string{"possible_miscarriage"}},
		{"shared keyword", []string{"fever", "abdominal pain", "cramping"}, []string{"possible_miscarriage", "possible_infection"}},
		{"single keyword", []string{"fever"}, nil},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCombinations(tt.symptoms, combos); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectCombinations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_Evaluate(t *testing.T) {
	kb := knowledge.Builtin()
	sc := NewScorer(nil)

	tests := []struct {
		name     string
		symptoms []string
		patient  Patient
		score    int
		grade    Grade
	}{
		{
			name:     "preeclampsia late pregnancy",
			symptoms: []string{"severe headaches", "vision changes", "swelling"},
			patient:  Patient{Week: 32},
			score:    11,
			grade:    Grade{TierHigh, UrgencyImmediate, 0.9},
		},
		{
			name:     "moderate early pregnancy escalates",
			symptoms: []string{"persistent vomiting", "constipation"},
			patient:  Patient{Week: 10},
			score:    3,
			grade:    Grade{TierHigh, UrgencyWithin24Hours, 0.6},
		},
		{
			name:     "moderate mid pregnancy",
			symptoms: []string{"persistent vomiting", "constipation"},
			patient:  Patient{Week: 20},
			score:    3,
			grade:    Grade{TierModerate, UrgencyWithin24Hours, 0.6},
		},
		{
			name:     "history raises low",
			symptoms: []string{"mild fatigue"},
			patient:  Patient{PreviousComplications: true},
			score:    2,
			grade:    Grade{TierModerate, UrgencyWithinWeek, 0.7},
		},
		{
			name:  "empty list",
			score: 0,
			grade: Grade{TierLow, UrgencyRoutine, 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := sc.Evaluate(tt.symptoms, kb, tt.patient)
			if ev.Score != tt.score {
				t.Errorf("score = %d, want %d (signals %+v)", ev.Score, tt.score, ev.Signals)
			}
			if ev.Grade != tt.grade {
				t.Errorf("grade = %+v, want %+v", ev.Grade, tt.grade)
			}
		})
	}
}

func TestScorer_Monotonic(t *testing.T) {
	kb := knowledge.Builtin()
	pool := []string{
		"mild nausea", "constipation", "persistent vomiting", "severe headaches",
		"vision changes", "swelling", "bleeding", "cramping", "fever", "contractions",
	}

	for _, name := range StrategyNames() {
		strategy, err := StrategyByName(name)
		if err != nil {
			t.Fatal(err)
		}
		sc := NewScorer(strategy)

		for _, p := range []Patient{{}, {Week: 8}, {Week: 20}, {Week: 36, PreviousComplications: true}} {
			var symptoms []string
			prev := sc.Evaluate(symptoms, kb, p)
			for _, s := range pool {
				symptoms = append(symptoms, s)
				next := sc.Evaluate(symptoms, kb, p)
				if next.Grade.Tier.Rank() < prev.Grade.Tier.Rank() {
					t.Errorf("%s: adding %q lowered tier %s -> %s", name, s, prev.Grade.Tier, next.Grade.Tier)
				}
				if next.Score < prev.Score {
					t.Errorf("%s: adding %q lowered score %d -> %d", name, s, prev.Score, next.Score)
				}
				prev = next
			}
		}
	}
}

func TestScorer_Bounds(t *testing.T) {
	kb := knowledge.Builtin()
	sc := NewScorer(nil)
	inputs := [][]string{nil, {"fatigue"}, {"heavy vaginal bleeding", "severe abdominal pain", "chest pain", "fever", "cramping"}}

	for _, in := range inputs {
		ev := sc.Evaluate(in, kb, Patient{Week: 30, PreviousComplications: true})
		if ev.Grade.Confidence < 0 || ev.Grade.Confidence > 1 {
			t.Errorf("confidence %v out of range for %v", ev.Grade.Confidence, in)
		}
		if ev.Score < 0 {
			t.Errorf("negative score for %v", in)
		}
	}
}
