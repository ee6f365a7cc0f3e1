// Package assess wires the knowledge base, scorer and renderers into the
// single Assess entry point. Assess always returns a well-formed Result:
// internal failures are logged and replaced by a cautious fallback.
package assess

import (
	"errors"
	"fmt"

	"github.com/gzhole/gravilog/internal/advice"
	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/logger"
	"github.com/gzhole/gravilog/internal/risk"
)

const ServiceName = "gravilog"

var errNotReady = errors.New("assessment engine is not initialized")

// Request is one assessment query. Optional fields are pointers so that
// "not supplied" is distinguishable from zero values.
type Request struct {
	Symptoms              []string `json:"symptoms"`
	GestationalWeek       *int     `json:"gestationalWeek,omitempty"`
	PreviousComplications *bool    `json:"previousComplications,omitempty"`
	AdditionalInfo        string   `json:"additionalSymptoms,omitempty"`
}

type Result struct {
	RiskLevel       risk.Tier    `json:"riskLevel"`
	Confidence      float64      `json:"confidence"`
	Recommendations []string     `json:"recommendations"`
	Reasoning       string       `json:"reasoning"`
	Urgency         risk.Urgency `json:"urgency"`
}

type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Strategy  string `json:"strategy"`
	Knowledge string `json:"knowledge"`
}

// Engine is safe for concurrent use; it holds no per-call state.
type Engine struct {
	kb     *knowledge.Base
	scorer *risk.Scorer
	log    *logger.Logger
}

// NewEngine builds an engine over kb. A nil strategy selects the default
// phrase strategy and a nil logger discards output.
func NewEngine(kb *knowledge.Base, strategy risk.Strategy, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		kb:     kb,
		scorer: risk.NewScorer(strategy),
		log:    log.With("engine"),
	}
}

// Fallback is the result returned whenever an assessment cannot be
// computed.
func Fallback() Result {
	return Result{
		RiskLevel:  risk.TierModerate,
		Confidence: 0.5,
		Recommendations: []string{
			"Contact your healthcare provider to discuss your symptoms",
			"Monitor symptoms closely and keep a detailed symptom diary",
			"Seek immediate medical attention if symptoms worsen",
		},
		Reasoning: "Assessment system encountered an error - medical consultation recommended",
		Urgency:   risk.UrgencyWithin24Hours,
	}
}

// Assess scores req. It never fails and never panics.
func (e *Engine) Assess(req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logOrNop().Error("assessment panicked, returning fallback", logger.F("panic", fmt.Sprint(r)))
			result = Fallback()
		}
	}()

	res, err := e.assess(req)
	if err != nil {
		e.logOrNop().Error("assessment failed, returning fallback", logger.Err(err))
		return Fallback()
	}
	return res
}

func (e *Engine) assess(req Request) (Result, error) {
	if e == nil || e.scorer == nil {
		return Result{}, errNotReady
	}
	if err := e.kb.Validate(); err != nil {
		return Result{}, fmt.Errorf("knowledge base unusable: %w", err)
	}

	patient := e.patient(req)
	ev := e.scorer.Evaluate(req.Symptoms, e.kb, patient)

	recs := advice.Recommend(ev.Grade.Tier, ev.Signals, e.kb, patient.Week)
	if len(recs) == 0 {
		return Result{}, fmt.Errorf("no recommendations for tier %q", ev.Grade.Tier)
	}

	e.log.Info("assessment completed",
		logger.F("strategy", e.scorer.Strategy().Name()),
		logger.F("symptoms", len(req.Symptoms)),
		logger.F("score", ev.Score),
		logger.F("tier", string(ev.Grade.Tier)),
		logger.F("combinations", len(ev.Signals.Combinations)),
	)

	return Result{
		RiskLevel:       ev.Grade.Tier,
		Confidence:      ev.Grade.Confidence,
		Recommendations: recs,
		Reasoning:       advice.Explain(ev, e.kb, patient.Week),
		Urgency:         ev.Grade.Urgency,
	}, nil
}

// patient extracts scoring context from req. Weeks outside the plausible
// range are treated as unknown.
func (e *Engine) patient(req Request) risk.Patient {
	var p risk.Patient
	if req.PreviousComplications != nil {
		p.PreviousComplications = *req.PreviousComplications
	}
	if req.GestationalWeek != nil {
		w := *req.GestationalWeek
		if w >= risk.MinWeek && w <= risk.MaxWeek {
			p.Week = w
		} else {
			e.log.Warn("ignoring out-of-range gestational week", logger.F("week", w))
		}
	}
	return p
}

// Health reports static liveness information.
func (e *Engine) Health() Health {
	h := Health{Status: "healthy", Service: ServiceName}
	if e == nil {
		return h
	}
	if e.scorer != nil {
		h.Strategy = e.scorer.Strategy().Name()
	}
	if e.kb != nil {
		h.Knowledge = e.kb.Source
	}
	return h
}

// Context returns guideline paragraphs related to the request's symptoms
// and additional information. It plays no part in scoring.
func (e *Engine) Context(req Request) []string {
	if e == nil || e.kb == nil {
		return nil
	}
	terms := append([]string(nil), req.Symptoms...)
	if req.AdditionalInfo != "" {
		terms = append(terms, req.AdditionalInfo)
	}
	return e.kb.Retrieve(terms, knowledge.DefaultRetrieveLimit)
}

func (e *Engine) logOrNop() *logger.Logger {
	if e == nil || e.log == nil {
		return logger.Nop()
	}
	return e.log
}
