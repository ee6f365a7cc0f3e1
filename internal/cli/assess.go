package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gzhole/gravilog/internal/assess"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	assessWeek          int
	assessComplications bool
	assessInfo          string
	assessJSON          bool
	assessContext       bool
)

var assessCmd = &cobra.Command{
	Use:   "assess <symptom> [symptom...]",
	Short: "Assess a list of pregnancy symptoms",
	Long: `Score one or more symptoms and print the risk tier, urgency,
recommendations and reasoning. Quote multi-word symptoms.

Output is human-readable on a terminal and JSON when piped.

Examples:
  gravilog assess "severe headaches" "vision changes" swelling --week 32
  gravilog assess "mild fatigue" --previous-complications
  gravilog assess bleeding cramping --week 9 --json`,
	RunE: assessCommand,
}

func init() {
	assessCmd.Flags().IntVar(&assessWeek, "week", 0, "Gestational week (1-42, 0 for unknown)")
	assessCmd.Flags().BoolVar(&assessComplications, "previous-complications", false, "Patient has had previous pregnancy complications")
	assessCmd.Flags().StringVar(&assessInfo, "info", "", "Additional free-text information")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "Force JSON output")
	assessCmd.Flags().BoolVar(&assessContext, "context", false, "Also print related guideline paragraphs")
	rootCmd.AddCommand(assessCmd)
}

func assessCommand(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	req := assess.Request{
		Symptoms:       args,
		AdditionalInfo: assessInfo,
	}
	if cmd.Flags().Changed("week") {
		req.GestationalWeek = &assessWeek
	}
	if cmd.Flags().Changed("previous-complications") {
		req.PreviousComplications = &assessComplications
	}

	result := rt.engine.Assess(req)

	var context []string
	if assessContext {
		context = rt.engine.Context(req)
	}

	out := cmd.OutOrStdout()
	if assessJSON || !isTerminal(out) {
		return writeAssessJSON(out, result, context)
	}
	printResult(out, result, context)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeAssessJSON(w io.Writer, result assess.Result, context []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if context == nil {
		return enc.Encode(result)
	}
	return enc.Encode(struct {
		assess.Result
		Context []string `json:"context"`
	}{result, context})
}

func printResult(w io.Writer, r assess.Result, context []string) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  %s Risk: %s   Urgency: %s   Confidence: %.0f%%\n",
		tierIcon(string(r.RiskLevel)), strings.ToUpper(string(r.RiskLevel)), urgencyLabel(string(r.Urgency)), r.Confidence*100)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Recommendations:")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Reasoning:")
	fmt.Fprintf(w, "  %s\n", r.Reasoning)

	if len(context) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Related guidance:")
		for _, p := range context {
			for _, line := range strings.Split(p, "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
			fmt.Fprintln(w)
		}
	}
}

func tierIcon(tier string) string {
	switch tier {
	case "high":
		return "🔴"
	case "moderate":
		return "🟠"
	case "low":
		return "🟢"
	default:
		return "❓"
	}
}

func urgencyLabel(u string) string {
	return strings.ReplaceAll(u, "_", " ")
}
