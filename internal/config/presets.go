package config

import "sort"

var Presets = map[string]*Config{
	"slab": DefaultConfig(),
	"lossy": withDefaults(func(c *Config) {
		c.Name = "lossy"
		c.Material = MaterialConfig{Start: 80, Width: 30, Permittivity: 2}
		c.Loss = LossConfig{Start: 120, Factor: 0.05}
	}),
	"pulse": withDefaults(func(c *Config) {
		c.Name = "pulse"
		c.Steps = 400
		c.Source.Kind = "gaussian"
	}),
	"ricker": withDefaults(func(c *Config) {
		c.Name = "ricker"
		c.Steps = 400
		c.Source.Kind = "ricker"
		c.Source.Wavelength = 20
	}),
	"vacuum": withDefaults(func(c *Config) {
		c.Name = "vacuum"
		c.Material = MaterialConfig{Start: 0, Width: 0, Permittivity: 1}
		c.Loss = LossConfig{Start: DefaultCells - 1, Factor: 0}
	}),
	"hard": withDefaults(func(c *Config) {
		c.Name = "hard"
		c.Source.Kind = "gaussian"
		c.Source.Injection = "hard"
		c.Source.Position = 20
	}),
	"tiny": withDefaults(func(c *Config) {
		c.Name = "tiny"
		c.Cells = 10
		c.Steps = 5
		c.TFSFBoundary = 3
		c.Source.Position = 3
		c.Material = MaterialConfig{Start: 5, Width: 2, Permittivity: 4}
		c.Loss = LossConfig{Start: 8, Factor: 0.01}
		c.Analysis.LogEvery = 1
	}),
}

func withDefaults(apply func(*Config)) *Config {
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
