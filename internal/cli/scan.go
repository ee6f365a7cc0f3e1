package cli

import (
	"fmt"

	"github.com/gzhole/gravilog/internal/assess"
	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/risk"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Self-test: verify the engine grades known symptom sets correctly",
	Long: `Run a quick diagnostic that assesses a set of reference symptom lists
with the active knowledge base and strategy, and checks each result
against the minimum expected risk tier.

  gravilog scan`,
	RunE: scanCommand,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

type scanCase struct {
	label   string
	req     assess.Request
	wantMin risk.Tier
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func scanCases() []scanCase {
	return []scanCase{
		{"Preeclampsia triad", assess.Request{Symptoms: []string{"severe headaches", "vision changes", "swelling"}, GestationalWeek: intPtr(32)}, risk.TierHigh},
		{"Heavy bleeding", assess.Request{Symptoms: []string{"heavy vaginal bleeding", "cramping"}, GestationalWeek: intPtr(9)}, risk.TierHigh},
		{"Early moderate", assess.Request{Symptoms: []string{"persistent vomiting", "constipation"}, GestationalWeek: intPtr(10)}, risk.TierHigh},
		{"Prior complications", assess.Request{Symptoms: []string{"mild fatigue"}, PreviousComplications: boolPtr(true)}, risk.TierModerate},
		{"Routine discomfort", assess.Request{Symptoms: []string{"breast tenderness"}, GestationalWeek: intPtr(20)}, risk.TierLow},
	}
}

type scanOutcome struct {
	scanCase
	got  assess.Result
	pass bool
}

// runScan assesses every reference case. Low-tier cases must stay low so
// that over-triage is caught as well.
func runScan(engine *assess.Engine) []scanOutcome {
	var out []scanOutcome
	for _, tc := range scanCases() {
		res := engine.Assess(tc.req)
		pass := res.RiskLevel.Rank() >= tc.wantMin.Rank()
		if tc.wantMin == risk.TierLow {
			pass = res.RiskLevel == risk.TierLow
		}
		out = append(out, scanOutcome{scanCase: tc, got: res, pass: pass})
	}
	return out
}

func scanCommand(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out, "  GraviLog Self-Test")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	h := rt.engine.Health()
	fmt.Fprintf(out, "  Strategy:  %s\n", h.Strategy)
	fmt.Fprintf(out, "  Knowledge: %s\n\n", h.Knowledge)

	fmt.Fprintln(out, "─── Reference Cases ───────────────────────────────────")
	passed := 0
	results := runScan(rt.engine)
	for _, r := range results {
		icon := "✅"
		if r.pass {
			passed++
		} else {
			icon = "❌"
		}
		fmt.Fprintf(out, "  %s  %-22s  want >= %-8s got %s/%s\n", icon, r.label, r.wantMin, r.got.RiskLevel, r.got.Urgency)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "─── Fail-safe ─────────────────────────────────────────")
	fallbackOK := assess.NewEngine(&knowledge.Base{}, nil, nil).Assess(assess.Request{}).Reasoning == assess.Fallback().Reasoning
	if fallbackOK {
		passed++
		fmt.Fprintln(out, "  ✅ Broken knowledge base falls back to cautious result")
	} else {
		fmt.Fprintln(out, "  ❌ Broken knowledge base did NOT fall back")
	}
	fmt.Fprintln(out)

	total := len(results) + 1
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	if passed == total {
		fmt.Fprintf(out, "  ✅ All %d tests passed\n", total)
	} else {
		fmt.Fprintf(out, "  ⚠  %d/%d tests passed, %d failed\n", passed, total, total-passed)
		fmt.Fprintln(out, "  Review your knowledge base, packs and strategy.")
	}
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	return nil
}
