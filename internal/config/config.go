package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultConfigDir     = ".gravilog"
	DefaultConfigName    = "config"
	DefaultKnowledgeFile = "pregnancy_knowledge.txt"
	DefaultPacksDir      = "packs"
	DefaultLogFile       = "gravilog.jsonl"
	DefaultAddr          = ":8000"
	DefaultStrategy      = "phrase"
	DefaultLogLevel      = "info"

	// FallbackKnowledgePath is the conventional location tried when the
	// configured knowledge file does not exist.
	FallbackKnowledgePath = "knowledge_base/pregnancy_knowledge.txt"

	EnvPrefix = "GRAVILOG"
)

// Keys understood by the configuration layer.
const (
	KeyKnowledgePath     = "knowledge.path"
	KeyKnowledgeFallback = "knowledge.fallback_path"
	KeyPacksDir          = "knowledge.packs_dir"
	KeyStrategy          = "scoring.strategy"
	KeyLogPath           = "log.path"
	KeyLogLevel          = "log.level"
	KeyServerAddr        = "server.addr"
)

type Config struct {
	ConfigDir  string
	ConfigFile string
	Knowledge  KnowledgeConfig
	Scoring    ScoringConfig
	Log        LogConfig
	Server     ServerConfig
}

type KnowledgeConfig struct {
	Path         string
	FallbackPath string
	PacksDir     string
}

// Paths returns the knowledge load chain in order.
func (k KnowledgeConfig) Paths() []string {
	return []string{k.Path, k.FallbackPath}
}

type ScoringConfig struct {
	// Strategy selects the scorer: "phrase" (default) or "pattern".
	Strategy string
}

type LogConfig struct {
	// Path of the JSON-lines log. "-" logs to stderr.
	Path  string
	Level string
}

type ServerConfig struct {
	Addr string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper, configDir string) {
	v.SetDefault(KeyKnowledgePath, filepath.Join(configDir, DefaultKnowledgeFile))
	v.SetDefault(KeyKnowledgeFallback, FallbackKnowledgePath)
	v.SetDefault(KeyPacksDir, filepath.Join(configDir, DefaultPacksDir))
	v.SetDefault(KeyStrategy, DefaultStrategy)
	v.SetDefault(KeyLogPath, filepath.Join(configDir, DefaultLogFile))
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyServerAddr, DefaultAddr)
}

// Load resolves configuration from defaults, an optional YAML config file,
// GRAVILOG_* environment variables and any flags already bound on v.
// An explicitly named config file must exist; the default one is optional.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	configDir := filepath.Join(homeDir, DefaultConfigDir)
	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	SetDefaults(v, configDir)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(configDir)
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return &Config{
		ConfigDir:  configDir,
		ConfigFile: v.ConfigFileUsed(),
		Knowledge: KnowledgeConfig{
			Path:         v.GetString(KeyKnowledgePath),
			FallbackPath: v.GetString(KeyKnowledgeFallback),
			PacksDir:     v.GetString(KeyPacksDir),
		},
		Scoring: ScoringConfig{Strategy: v.GetString(KeyStrategy)},
		Log: LogConfig{
			Path:  v.GetString(KeyLogPath),
			Level: v.GetString(KeyLogLevel),
		},
		Server: ServerConfig{Addr: v.GetString(KeyServerAddr)},
	}, nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
