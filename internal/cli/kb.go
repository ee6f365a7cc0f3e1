package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect the active knowledge base",
	Long: `Inspect the knowledge base GraviLog resolved at startup, including
any enabled packs.

Examples:
  gravilog kb show              # Print the merged table as YAML
  gravilog kb search headache   # Related guideline paragraphs
  gravilog kb symptoms          # Symptom intake catalog`,
}

var kbShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged knowledge table as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# source: %s\n", rt.kb.Source)
		return writeKnowledgeYAML(out, rt.kb)
	},
}

var kbSearchCmd = &cobra.Command{
	Use:   "search <term> [term...]",
	Short: "Find guideline paragraphs mentioning the given terms",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		paragraphs := rt.kb.Retrieve(args, knowledge.DefaultRetrieveLimit)
		if len(paragraphs) == 0 {
			fmt.Fprintln(out, "No matching guidance.")
			return nil
		}
		for i, p := range paragraphs {
			if i > 0 {
				fmt.Fprintln(out, strings.Repeat("─", 60))
			}
			fmt.Fprintln(out, p)
		}
		return nil
	},
}

var kbSymptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "List the symptom intake catalog",
	Run: func(cmd *cobra.Command, args []string) {
		printCatalog(cmd.OutOrStdout(), knowledge.Catalog())
	},
}

func init() {
	kbCmd.AddCommand(kbShowCmd)
	kbCmd.AddCommand(kbSearchCmd)
	kbCmd.AddCommand(kbSymptomsCmd)
	rootCmd.AddCommand(kbCmd)
}

func writeKnowledgeYAML(w io.Writer, kb *knowledge.Base) error {
	view := kb.Clone()
	view.Corpus = ""
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return err
	}
	return enc.Close()
}

func printCatalog(w io.Writer, catalog []knowledge.SymptomInfo) {
	fmt.Fprintf(w, "  %-3s %-26s %-16s %s\n", "ID", "NAME", "CATEGORY", "WEIGHT")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, s := range catalog {
		fmt.Fprintf(w, "  %-3d %-26s %-16s %d\n", s.ID, s.Name, s.Category, s.SeverityWeight)
	}
}
