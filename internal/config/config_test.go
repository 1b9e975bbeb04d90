package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/combix/combix/engine"
)

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	contents := "poolCapacity: 65000\nsanity: true\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PoolCapacity != 65000 {
		t.Errorf("PoolCapacity = %d, want 65000", cfg.PoolCapacity)
	}
	if !cfg.Sanity {
		t.Error("Sanity = false, want true")
	}
	if cfg.SpineCapacity != 512 {
		t.Errorf("SpineCapacity = %d, want default 512", cfg.SpineCapacity)
	}
	if !cfg.Extended {
		t.Error("Extended = false, want default true (unset in file)")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadExtendedFalseOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte("extended: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Extended {
		t.Error("Extended = true, want explicit false from file to stick")
	}
}

func TestAutoTuneNeverShrinksSpineCapacity(t *testing.T) {
	base := engine.DefaultConfig()
	tuned := AutoTune(base)
	if tuned.SpineCapacity < base.SpineCapacity {
		t.Fatalf("AutoTune shrank SpineCapacity: %d -> %d", base.SpineCapacity, tuned.SpineCapacity)
	}
	if tuned.SpineCapacity%base.SpineCapacity != 0 {
		t.Fatalf("AutoTune SpineCapacity %d is not a whole multiple of %d", tuned.SpineCapacity, base.SpineCapacity)
	}
	if tuned.PoolCapacity != base.PoolCapacity {
		t.Fatal("AutoTune must not touch PoolCapacity")
	}
}
