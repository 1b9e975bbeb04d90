// Package config loads engine tuning parameters from a YAML file, the
// runtime-overridable counterpart to engine.DefaultConfig's compiled-in
// values.
package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/cpu"

	"github.com/combix/combix/engine"
	"sigs.k8s.io/yaml"
)

// File is the on-disk shape of a config file. Field names match the YAML
// keys directly; engine.Config's names are kept distinct so the YAML
// schema doesn't have to track every renaming of the in-memory struct.
type File struct {
	PoolCapacity  uint32 `json:"poolCapacity"`
	SpineCapacity int    `json:"spineCapacity"`
	Extended      *bool  `json:"extended"`
	Sanity        *bool  `json:"sanity"`
}

// Load reads and parses the YAML config file at path. Settings absent
// from the file, and capacities given as 0, fall back to
// engine.DefaultConfig's values, so a config file only needs to mention
// the settings it overrides; an explicit false for extended or sanity is
// kept.
func Load(path string) (engine.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return engine.Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return merge(f), nil
}

func merge(f File) engine.Config {
	cfg := engine.DefaultConfig()
	if f.PoolCapacity != 0 {
		cfg.PoolCapacity = f.PoolCapacity
	}
	if f.SpineCapacity != 0 {
		cfg.SpineCapacity = f.SpineCapacity
	}
	if f.Extended != nil {
		cfg.Extended = *f.Extended
	}
	if f.Sanity != nil {
		cfg.Sanity = *f.Sanity
	}
	return cfg
}

// spineTier mirrors the tiered feature-detection style used elsewhere in
// the corpus for picking a workload size from CPU capability (wider
// vector units generally come with a roomier cache hierarchy, so a
// bigger spine stack costs fewer cache misses to walk).
const (
	spineTierBase uint8 = iota
	spineTierAVX2
	spineTierAVX512
)

func spineTier() uint8 {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512VL:
		return spineTierAVX512
	case cpu.X86.HasAVX2:
		return spineTierAVX2
	default:
		return spineTierBase
	}
}

// AutoTune scales cfg's SpineCapacity up on wider-vector-unit hosts,
// leaving every other field untouched. It is opt-in: Load never calls
// it, since a config file's explicit spineCapacity should always win.
func AutoTune(cfg engine.Config) engine.Config {
	switch spineTier() {
	case spineTierAVX512:
		cfg.SpineCapacity *= 4
	case spineTierAVX2:
		cfg.SpineCapacity *= 2
	}
	return cfg
}
