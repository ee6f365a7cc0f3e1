package cli

import (
	"github.com/gzhole/gravilog/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	// v holds the layered configuration; flags below are bound to it.
	v = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "gravilog",
	Short: "GraviLog - pregnancy symptom risk assessment",
	Long: `GraviLog scores a list of pregnancy symptoms against a curated knowledge
base and returns a risk tier (low, moderate, high), an urgency level,
recommendations and a readable explanation.

It is an advisory tool and never a substitute for professional care.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to config file (default: ~/.gravilog/config.yaml)")
	flags.String("knowledge", "", "Path to knowledge file, .txt corpus or .yaml (default: ~/.gravilog/pregnancy_knowledge.txt)")
	flags.String("packs", "", "Knowledge packs directory (default: ~/.gravilog/packs)")
	flags.String("strategy", "", "Scoring strategy: phrase or pattern (default: phrase)")
	flags.String("log", "", "Path to log file, - for stderr (default: ~/.gravilog/gravilog.jsonl)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (default: info)")

	_ = v.BindPFlag(config.KeyKnowledgePath, flags.Lookup("knowledge"))
	_ = v.BindPFlag(config.KeyPacksDir, flags.Lookup("packs"))
	_ = v.BindPFlag(config.KeyStrategy, flags.Lookup("strategy"))
	_ = v.BindPFlag(config.KeyLogPath, flags.Lookup("log"))
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
}

func loadConfig() (*config.Config, error) {
	return config.Load(v, cfgFile)
}

func Execute() error {
	return rootCmd.Execute()
}
