package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Manage knowledge packs",
	Long: `Manage GraviLog knowledge packs.

Knowledge packs are YAML files that add symptom phrases, patterns and
combinations to the base knowledge. They are stored in ~/.gravilog/packs/
and merged with the knowledge base at startup. A file whose name starts
with "_" is disabled.

Examples:
  gravilog pack list                    # List installed packs
  gravilog pack enable gestational-diabetes
  gravilog pack disable gestational-diabetes
  gravilog pack show gestational-diabetes`,
}

var packListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed knowledge packs",
	RunE:  packList,
}

var packEnableCmd = &cobra.Command{
	Use:   "enable <pack-name>",
	Short: "Enable a disabled knowledge pack",
	Args:  cobra.ExactArgs(1),
	RunE:  packEnable,
}

var packDisableCmd = &cobra.Command{
	Use:   "disable <pack-name>",
	Short: "Disable a knowledge pack (prefix with underscore)",
	Args:  cobra.ExactArgs(1),
	RunE:  packDisable,
}

var packShowCmd = &cobra.Command{
	Use:   "show <pack-name>",
	Short: "Show the contents of a knowledge pack",
	Args:  cobra.ExactArgs(1),
	RunE:  packShow,
}

func init() {
	packCmd.AddCommand(packListCmd)
	packCmd.AddCommand(packEnableCmd)
	packCmd.AddCommand(packDisableCmd)
	packCmd.AddCommand(packShowCmd)
	rootCmd.AddCommand(packCmd)
}

func packsDir() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	dir := cfg.Knowledge.PacksDir
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func packList(cmd *cobra.Command, args []string) error {
	dir, err := packsDir()
	if err != nil {
		return err
	}

	_, infos, err := knowledge.LoadPacks(dir, knowledge.Builtin())
	if err != nil {
		return fmt.Errorf("failed to load packs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No knowledge packs installed.")
		fmt.Fprintf(out, "\nTo install packs, copy YAML files to: %s\n", dir)
		return nil
	}

	fmt.Fprintln(out, "Installed Knowledge Packs:")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, info := range infos {
		status := "✅"
		if !info.Enabled {
			status = "❌"
		}
		if info.Err != nil {
			fmt.Fprintf(out, "  ⚠   %-25s rejected: %v\n", info.Name, info.Err)
			continue
		}
		fmt.Fprintf(out, "  %s  %-25s %s\n", status, info.Name, info.Description)
		if info.Version != "" {
			fmt.Fprintf(out, "       v%s by %s  (%d entries)\n", info.Version, info.Author, info.EntryCount)
		}
	}
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "\nPacks directory: %s\n", dir)
	return nil
}

func packEnable(cmd *cobra.Command, args []string) error {
	return togglePack(cmd, args[0], true)
}

func packDisable(cmd *cobra.Command, args []string) error {
	return togglePack(cmd, args[0], false)
}

func togglePack(cmd *cobra.Command, name string, enabled bool) error {
	dir, err := packsDir()
	if err != nil {
		return err
	}
	if _, err := knowledge.SetPackEnabled(dir, name, enabled); err != nil {
		return err
	}
	if enabled {
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Pack '%s' enabled.\n", name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "❌ Pack '%s' disabled.\n", name)
	}
	return nil
}

func packShow(cmd *cobra.Command, args []string) error {
	dir, err := packsDir()
	if err != nil {
		return err
	}

	name := strings.TrimPrefix(args[0], "_")
	var data []byte
	for _, candidate := range []string{name + ".yaml", "_" + name + ".yaml", name + ".yml", "_" + name + ".yml"} {
		data, err = os.ReadFile(filepath.Join(dir, candidate))
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("pack '%s' not found in %s", name, dir)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
