package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show GraviLog status: config, knowledge base, packs, log",
	Long: `Check which configuration and knowledge base GraviLog resolves,
which packs are active, and where the log is written.

  gravilog status`,
	RunE: statusCommand,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusCommand(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out, "  GraviLog Status")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	binPath, err := os.Executable()
	if err != nil {
		binPath = "unknown"
	}
	fmt.Fprintf(out, "  Binary:    %s (%s)\n", binPath, Version)
	fmt.Fprintf(out, "  Config:    %s\n", rt.cfg.ConfigDir)
	checkFile(out, "Config file", rt.cfg.ConfigFile, "using defaults")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "─── Knowledge Base ────────────────────────────────────")
	for _, p := range rt.cfg.Knowledge.Paths() {
		checkFile(out, "Candidate", p, "not present")
	}
	h := rt.engine.Health()
	fmt.Fprintf(out, "  Source:    %s\n", h.Knowledge)
	fmt.Fprintf(out, "  Entries:   %d high, %d moderate, %d low, %d combinations\n",
		len(rt.kb.High), len(rt.kb.Moderate), len(rt.kb.Low), len(rt.kb.Combinations))
	fmt.Fprintf(out, "  Strategy:  %s\n", h.Strategy)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "─── Packs ─────────────────────────────────────────────")
	if len(rt.packs) == 0 {
		fmt.Fprintf(out, "  ⬚  No knowledge packs installed (%s)\n", rt.cfg.Knowledge.PacksDir)
	} else {
		enabled := 0
		for _, info := range rt.packs {
			if info.Err != nil {
				fmt.Fprintf(out, "  ⚠  Pack %s rejected: %v\n", info.Name, info.Err)
				continue
			}
			if info.Enabled {
				enabled++
			}
		}
		fmt.Fprintf(out, "  ✅ Knowledge packs: %d installed, %d enabled\n", len(rt.packs), enabled)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "─── Log ───────────────────────────────────────────────")
	checkLog(out, rt.cfg.Log.Path)
	fmt.Fprintln(out)

	return nil
}

func checkFile(out io.Writer, name, path, missing string) {
	if path == "" {
		fmt.Fprintf(out, "  ⬚  %s: %s\n", name, missing)
		return
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "  ✅ %s: %s\n", name, path)
	} else {
		fmt.Fprintf(out, "  ⬚  %s: %s (%s)\n", name, path, missing)
	}
}

func checkLog(out io.Writer, path string) {
	if path == "" || path == "-" {
		fmt.Fprintln(out, "  ✅ Logging to stderr")
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(out, "  ⬚  %s (not yet created, starts on first event)\n", path)
		return
	}

	sizeKB := info.Size() / 1024
	if sizeKB == 0 {
		fmt.Fprintf(out, "  ✅ %s (<1 KB)\n", path)
	} else {
		fmt.Fprintf(out, "  ✅ %s (%d KB)\n", path, sizeKB)
	}
}
