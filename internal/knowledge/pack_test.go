package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPacks_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	base := Builtin()

	result, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 pack infos, got %d", len(infos))
	}
	if len(result.High) != len(base.High) {
		t.Errorf("expected %d high phrases, got %d", len(base.High), len(result.High))
	}
}

func TestLoadPacks_NonExistentDir(t *testing.T) {
	base := Builtin()
	result, _, err := LoadPacks("/nonexistent/path/packs", base)
	if err != nil {
		t.Fatalf("unexpected error for non-existent dir: %v", err)
	}
	if result != base {
		t.Error("expected base to be returned unchanged")
	}
}

func TestLoadPacks_Merges(t *testing.T) {
	dir := t.TempDir()
	base := Builtin()

	packYAML := `
name: "Late Pregnancy"
description: "Third trimester warning signs"
version: "1.0.0"
author: "Test"
high:
  - "leaking fluid"
  - "Chest pain"
moderate:
  - "regular contractions"
combinations:
  - name: preterm_labor
    keywords: [contractions, fluid]
    rule: majority
    description: symptoms suggesting preterm labor
  - name: preeclampsia
    keywords: [ignored]
high_patterns:
  - [fluid, leaking]
  - [bleeding, heavy]
`
	writeFile(t, filepath.Join(dir, "late.yaml"), packYAML)

	result, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(infos) != 1 {
		t.Fatalf("expected 1 pack info, got %d", len(infos))
	}
	if infos[0].Name != "Late Pregnancy" || !infos[0].Enabled {
		t.Errorf("unexpected info: %+v", infos[0])
	}
	if infos[0].EntryCount != 7 {
		t.Errorf("expected 7 entries, got %d", infos[0].EntryCount)
	}

	if got, want := len(result.High), len(base.High)+1; got != want {
		t.Errorf("expected %d high phrases (duplicate skipped), got %d", want, got)
	}
	if result.High[len(result.High)-1] != "leaking fluid" {
		t.Errorf("expected pack phrase appended last, got %v", result.High)
	}
	if got, want := len(result.HighPatterns), len(base.HighPatterns)+1; got != want {
		t.Errorf("expected %d high patterns, got %d", want, got)
	}

	combo, ok := result.Combination("preterm_labor")
	if !ok {
		t.Fatal("expected preterm_labor combination")
	}
	if combo.Rule != RuleMajority {
		t.Errorf("unexpected rule %q", combo.Rule)
	}
	pre, _ := result.Combination("preeclampsia")
	if len(pre.Keywords) != 3 {
		t.Error("existing combination must not be replaced by a pack")
	}

	if len(base.High) != len(Builtin().High) {
		t.Error("base table was mutated")
	}
}

func TestLoadPacks_DisabledPack(t *testing.T) {
	dir := t.TempDir()
	base := Builtin()

	writeFile(t, filepath.Join(dir, "_extra.yaml"), "name: extra\nhigh: [\"seizure\"]\n")

	result, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 1 || infos[0].Enabled {
		t.Fatalf("expected one disabled pack, got %+v", infos)
	}
	if len(result.High) != len(base.High) {
		t.Error("disabled pack should not be merged")
	}
}

func TestLoadPacks_InvalidPackListed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "high: [oops")
	writeFile(t, filepath.Join(dir, "readme.md"), "not a pack")

	_, infos, err := LoadPacks(dir, Builtin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "broken" {
		t.Errorf("expected broken pack to be listed by file name, got %+v", infos)
	}
	if infos[0].Err == nil {
		t.Error("expected parse error on broken pack")
	}
}

func TestLoadPacks_RejectsUnknownCombinationRule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "typo.yaml"), `name: gdm
moderate: ["excessive thirst"]
combinations:
  - name: gdm
    keywords: [thirst, urination]
    rule: any
`)
	writeFile(t, filepath.Join(dir, "good.yaml"), "name: good\nlow: [\"leg cramps\"]\n")

	result, infos, err := LoadPacks(dir, Builtin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := result.Validate(); err != nil {
		t.Fatalf("merged table must stay valid, got %v", err)
	}
	if _, ok := result.Combination("gdm"); ok {
		t.Error("combination from rejected pack was merged")
	}
	for _, p := range result.Moderate {
		if p == "excessive thirst" {
			t.Error("phrases from rejected pack were merged")
		}
	}
	if result.Low[len(result.Low)-1] != "leg cramps" {
		t.Errorf("valid pack should still merge, low = %v", result.Low)
	}

	var typo *PackInfo
	for i := range infos {
		if infos[i].Name == "typo" {
			typo = &infos[i]
		}
	}
	if typo == nil {
		t.Fatalf("rejected pack not listed: %+v", infos)
	}
	if typo.Err == nil || typo.EntryCount != 0 {
		t.Errorf("expected rejected pack with error and no entries, got %+v", *typo)
	}
}

func TestSetPackEnabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "extra.yaml"), "name: extra\n")

	path, err := SetPackEnabled(dir, "extra", false)
	if err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if filepath.Base(path) != "_extra.yaml" {
		t.Errorf("unexpected disabled path %s", path)
	}
	if _, err := os.Stat(filepath.Join(dir, "extra.yaml")); !os.IsNotExist(err) {
		t.Error("expected original file to be renamed")
	}

	path, err = SetPackEnabled(dir, "_extra", true)
	if err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if filepath.Base(path) != "extra.yaml" {
		t.Errorf("unexpected enabled path %s", path)
	}

	if _, err := SetPackEnabled(dir, "missing", true); err == nil {
		t.Error("expected error for unknown pack")
	}
}
