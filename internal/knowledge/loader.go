package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gzhole/gravilog/internal/logger"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a single knowledge file. YAML files are decoded into the
// structured form; anything else is parsed as a text corpus with
// DefaultSchema. Combinations and pattern groups the file does not define
// are taken from the built-in table.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var kb *Base
	if isYAMLFile(path) {
		kb = &Base{}
		if err := yaml.Unmarshal(data, kb); err != nil {
			return nil, fmt.Errorf("failed to parse knowledge file %s: %w", path, err)
		}
	} else {
		kb, err = Parse(string(data), DefaultSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to parse knowledge file %s: %w", path, err)
		}
	}

	fillDefaults(kb)
	kb.Source = path

	if err := kb.Validate(); err != nil {
		return nil, fmt.Errorf("invalid knowledge file %s: %w", path, err)
	}
	return kb, nil
}

// Load walks paths in order and loads the first one that exists. Later
// paths are only consulted when the earlier ones are absent. Any failure
// degrades to the built-in table; Load never returns nil.
func Load(paths []string, log *logger.Logger) *Base {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("knowledge")

	for _, path := range paths {
		if path == "" {
			continue
		}
		path = expandHome(path)

		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				log.Debug("knowledge file not found", logger.F("path", path))
				continue
			}
			log.Warn("knowledge file unreadable, using built-in table", logger.F("path", path), logger.Err(err))
			return Builtin()
		}

		kb, err := LoadFile(path)
		if err != nil {
			log.Warn("knowledge file rejected, using built-in table", logger.F("path", path), logger.Err(err))
			return Builtin()
		}
		log.Info("knowledge base loaded",
			logger.F("path", path),
			logger.F("high", len(kb.High)),
			logger.F("moderate", len(kb.Moderate)),
			logger.F("low", len(kb.Low)),
		)
		return kb
	}

	log.Warn("using built-in knowledge table", logger.Err(ErrNoSource))
	return Builtin()
}

func fillDefaults(kb *Base) {
	builtin := Builtin()
	if len(kb.Combinations) == 0 {
		kb.Combinations = builtin.Combinations
	}
	if len(kb.HighPatterns) == 0 {
		kb.HighPatterns = builtin.HighPatterns
	}
	if len(kb.ModeratePatterns) == 0 {
		kb.ModeratePatterns = builtin.ModeratePatterns
	}
	if kb.Corpus == "" {
		kb.Corpus = builtinCorpus
	}
	for i := range kb.Combinations {
		if kb.Combinations[i].Rule == "" {
			kb.Combinations[i].Rule = RuleAll
		}
	}
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
