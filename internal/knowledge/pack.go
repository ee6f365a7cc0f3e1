package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pack is an add-on knowledge file. Packs only ever add phrases,
// patterns and combinations; they never remove built-in entries.
type Pack struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	PackVersion  string        `yaml:"version"`
	Author       string        `yaml:"author"`
	High         []string      `yaml:"high"`
	Moderate     []string      `yaml:"moderate"`
	Low          []string      `yaml:"low"`
	Combinations []Combination `yaml:"combinations"`

	HighPatterns     []Pattern `yaml:"high_patterns"`
	ModeratePatterns []Pattern `yaml:"moderate_patterns"`
}

// PackInfo is a summary of a pack for listing.
type PackInfo struct {
	Name        string
	Description string
	Version     string
	Author      string
	Enabled     bool
	Path        string
	EntryCount  int

	// Err is set when the pack could not be read or was rejected. Such
	// packs are listed but never merged.
	Err error
}

// LoadPacks reads all .yaml files from packsDir and merges the enabled ones
// into a copy of base. Files whose name starts with "_" are disabled.
// Phrase lists and pattern groups are unioned in order; combinations are
// added only under new names.
func LoadPacks(packsDir string, base *Base) (*Base, []PackInfo, error) {
	var infos []PackInfo

	entries, err := os.ReadDir(expandHome(packsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil, nil
		}
		return nil, nil, err
	}

	result := base.Clone()

	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}

		path := filepath.Join(expandHome(packsDir), entry.Name())

		baseName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		enabled := !strings.HasPrefix(baseName, "_")

		pack, err := loadPack(path)
		if err == nil {
			err = pack.validate()
		}
		if err != nil {
			infos = append(infos, PackInfo{
				Name:    strings.TrimPrefix(baseName, "_"),
				Enabled: enabled,
				Path:    path,
				Err:     err,
			})
			continue
		}

		info := PackInfo{
			Name:        pack.Name,
			Description: pack.Description,
			Version:     pack.PackVersion,
			Author:      pack.Author,
			Enabled:     enabled,
			Path:        path,
			EntryCount:  pack.entryCount(),
		}
		if info.Name == "" {
			info.Name = strings.TrimPrefix(baseName, "_")
		}
		infos = append(infos, info)

		if !enabled {
			continue
		}

		mergePackInto(result, pack)
	}

	return result, infos, nil
}

func loadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack %s: %w", path, err)
	}
	for i := range pack.Combinations {
		if pack.Combinations[i].Rule == "" {
			pack.Combinations[i].Rule = RuleAll
		}
	}

	return &pack, nil
}

// validate rejects packs whose combinations could not be scored.
func (p *Pack) validate() error {
	for _, c := range p.Combinations {
		if err := c.validate(); err != nil {
			return fmt.Errorf("pack %q: %w", p.Name, err)
		}
	}
	return nil
}

func (p *Pack) entryCount() int {
	return len(p.High) + len(p.Moderate) + len(p.Low) +
		len(p.Combinations) + len(p.HighPatterns) + len(p.ModeratePatterns)
}

func mergePackInto(target *Base, pack *Pack) {
	target.High = unionStrings(target.High, pack.High)
	target.Moderate = unionStrings(target.Moderate, pack.Moderate)
	target.Low = unionStrings(target.Low, pack.Low)

	target.HighPatterns = unionPatterns(target.HighPatterns, pack.HighPatterns)
	target.ModeratePatterns = unionPatterns(target.ModeratePatterns, pack.ModeratePatterns)

	for _, c := range pack.Combinations {
		if _, exists := target.Combination(c.Name); exists {
			continue
		}
		c.Keywords = append([]string(nil), c.Keywords...)
		target.Combinations = append(target.Combinations, c)
	}
}

func unionStrings(dst, src []string) []string {
	existing := make(map[string]bool, len(dst))
	for _, s := range dst {
		existing[strings.ToLower(s)] = true
	}
	for _, s := range src {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || existing[key] {
			continue
		}
		existing[key] = true
		dst = append(dst, strings.TrimSpace(s))
	}
	return dst
}

func unionPatterns(dst, src []Pattern) []Pattern {
	existing := make(map[string]bool, len(dst))
	for _, p := range dst {
		existing[patternKey(p)] = true
	}
	for _, p := range src {
		if len(p) == 0 || existing[patternKey(p)] {
			continue
		}
		existing[patternKey(p)] = true
		dst = append(dst, append(Pattern(nil), p...))
	}
	return dst
}

func patternKey(p Pattern) string {
	return strings.ToLower(strings.Join(p, "\x00"))
}

// SetPackEnabled renames a pack file to toggle its "_" disabled prefix and
// returns the new path.
func SetPackEnabled(packsDir, name string, enabled bool) (string, error) {
	dir := expandHome(packsDir)
	name = strings.TrimPrefix(name, "_")

	for _, ext := range []string{".yaml", ".yml"} {
		on := filepath.Join(dir, name+ext)
		off := filepath.Join(dir, "_"+name+ext)

		from, to := off, on
		if !enabled {
			from, to = on, off
		}

		if _, err := os.Stat(to); err == nil {
			return to, nil
		}
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, to); err != nil {
			return "", fmt.Errorf("failed to rename pack: %w", err)
		}
		return to, nil
	}
	return "", fmt.Errorf("pack %q not found in %s", name, dir)
}
