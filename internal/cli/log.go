package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gzhole/gravilog/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logFilterLevel string
	logFilterMsg   string
	logLast        int
	logSummary     bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the GraviLog event log",
	Long: `View the JSON-lines event log with filtering and summary options.
Symptom text is never written to the log; entries carry tiers, scores
and counts only.

Examples:
  gravilog log                     # Show all entries
  gravilog log --last 20           # Show last 20 entries
  gravilog log --level warn        # Show warnings and errors
  gravilog log --msg assessment    # Show only assessment entries
  gravilog log --summary           # Show summary stats`,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterLevel, "level", "", "Minimum level to show (debug, info, warn, error)")
	logCmd.Flags().StringVar(&logFilterMsg, "msg", "", "Show only entries whose message contains this text")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Log.Path == "" || cfg.Log.Path == "-" {
		return fmt.Errorf("logging to stderr; no log file to read")
	}

	events, err := readEventLog(cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No log entries found.")
		return nil
	}

	filtered, err := filterEvents(events, logFilterLevel, logFilterMsg)
	if err != nil {
		return err
	}
	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	if logSummary {
		printSummary(out, events)
		return nil
	}

	printEvents(out, filtered)
	return nil
}

func readEventLog(path string) ([]logger.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []logger.Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event logger.Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue // skip malformed lines
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

func filterEvents(events []logger.Event, minLevel, msg string) ([]logger.Event, error) {
	if minLevel == "" && msg == "" {
		return events, nil
	}

	threshold := logger.LevelDebug
	if minLevel != "" {
		var err error
		if threshold, err = logger.ParseLevel(minLevel); err != nil {
			return nil, err
		}
	}

	var filtered []logger.Event
	for _, e := range events {
		level, err := logger.ParseLevel(e.Level)
		if err == nil && level < threshold {
			continue
		}
		if msg != "" && !strings.Contains(e.Msg, msg) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

func printEvents(out io.Writer, events []logger.Event) {
	for _, e := range events {
		component := ""
		if e.Component != "" {
			component = "[" + e.Component + "] "
		}
		fmt.Fprintf(out, "%s %s %s%s\n", levelIcon(e.Level), formatTimestamp(e.Timestamp), component, e.Msg)

		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "     %s: %v\n", k, e.Fields[k])
		}
	}
}

func printSummary(out io.Writer, all []logger.Event) {
	levels := map[string]int{}
	tiers := map[string]int{}
	assessments := 0

	for _, e := range all {
		levels[e.Level]++
		if tier, ok := e.Fields["tier"].(string); ok {
			assessments++
			tiers[tier]++
		}
	}

	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintln(out, "  GraviLog Log Summary")
	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintf(out, "  Total events:    %d\n", len(all))
	fmt.Fprintf(out, "  Warnings:        %d\n", levels["warn"])
	fmt.Fprintf(out, "  Errors:          %d\n", levels["error"])
	fmt.Fprintf(out, "  Assessments:     %d\n", assessments)
	fmt.Fprintf(out, "    high:          %d\n", tiers["high"])
	fmt.Fprintf(out, "    moderate:      %d\n", tiers["moderate"])
	fmt.Fprintf(out, "    low:           %d\n", tiers["low"])
	fmt.Fprintln(out, "═══════════════════════════════════════════")

	fmt.Fprintf(out, "  First event:     %s\n", formatTimestamp(all[0].Timestamp))
	fmt.Fprintf(out, "  Last event:      %s\n", formatTimestamp(all[len(all)-1].Timestamp))
	fmt.Fprintln(out)
}

func levelIcon(level string) string {
	switch level {
	case "error":
		return "🛑"
	case "warn":
		return "⚠️ "
	case "info":
		return "ℹ️ "
	default:
		return "🔍"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
