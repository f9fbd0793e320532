package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"default": {
		Algorithm: "Bubble Sort", Size: 50, Speed: 50, Pattern: "random",
	},
	"quick-worst": {
		Algorithm: "Quick Sort", Size: 60, Speed: 70, Pattern: "sorted",
	},
	"insertion-best": {
		Algorithm: "Insertion Sort", Size: 80, Speed: 60, Pattern: "nearly-sorted",
	},
	"merge-large": {
		Algorithm: "Merge Sort", Size: 150, Speed: 90, Pattern: "random",
	},
	"few-unique": {
		Algorithm: "Quick Sort", Size: 100, Speed: 80, Pattern: "few-unique",
	},
	"reversed-bubble": {
		Algorithm: "Bubble Sort", Size: 30, Speed: 75, Pattern: "reversed",
	},
}

// GetPreset returns a normalized copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Algorithm, cfg.Size, cfg.Speed, cfg.Pattern = p.Algorithm, p.Size, p.Speed, p.Pattern
	cfg.Normalize()
	return cfg
}

// ApplyPreset overwrites the run settings of c with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c.Algorithm, c.Size, c.Speed, c.Pattern = p.Algorithm, p.Size, p.Speed, p.Pattern
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
