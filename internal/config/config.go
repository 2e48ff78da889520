package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fdtd1d/internal/fdtd"
	"github.com/san-kum/fdtd1d/internal/source"
	"github.com/san-kum/fdtd1d/internal/spectral"
)

const (
	PrecisionFloat64 = "float64"
	PrecisionFloat32 = "float32"
)

const (
	DefaultCells        = 200
	DefaultSteps        = 450
	DefaultTFSF         = 50
	DefaultDelay        = 30.0
	DefaultWidth        = 10.0
	DefaultWavelength   = 25.0
	DefaultPeriods      = 10
	DefaultSlabStart    = 100
	DefaultSlabWidth    = 50
	DefaultPermittivity = 4.0
	DefaultLossStart    = 180
	DefaultLoss         = 0.02
	DefaultLogEvery     = 100
)

type Config struct {
	Name         string         `yaml:"name"`
	Precision    string         `yaml:"precision"`
	Cells        int            `yaml:"cells"`
	Steps        int            `yaml:"steps"`
	Source       SourceConfig   `yaml:"source"`
	TFSFBoundary int            `yaml:"tfsf_boundary"`
	Material     MaterialConfig `yaml:"material"`
	Loss         LossConfig     `yaml:"loss"`
	Analysis     AnalysisConfig `yaml:"analysis"`
}

type SourceConfig struct {
	Kind       string  `yaml:"kind"`
	Injection  string  `yaml:"injection"`
	Position   int     `yaml:"position"`
	Delay      float64 `yaml:"delay"`
	Width      float64 `yaml:"width"`
	Wavelength float64 `yaml:"wavelength"`
	Periods    int     `yaml:"periods"`
}

type MaterialConfig struct {
	Start        int     `yaml:"start"`
	Width        int     `yaml:"width"`
	Permittivity float64 `yaml:"permittivity"`
}

type LossConfig struct {
	Start  int     `yaml:"start"`
	Factor float64 `yaml:"factor"`
}

type AnalysisConfig struct {
	Transform   string `yaml:"transform"`
	Workers     int    `yaml:"workers"`
	CheckFinite bool   `yaml:"check_finite"`
	LogEvery    int    `yaml:"log_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:         "slab",
		Precision:    PrecisionFloat64,
		Cells:        DefaultCells,
		Steps:        DefaultSteps,
		TFSFBoundary: DefaultTFSF,
		Source: SourceConfig{
			Kind:       string(source.KindHarmonic),
			Injection:  string(fdtd.InjectTFSF),
			Position:   DefaultTFSF,
			Delay:      DefaultDelay,
			Width:      DefaultWidth,
			Wavelength: DefaultWavelength,
			Periods:    DefaultPeriods,
		},
		Material: MaterialConfig{
			Start:        DefaultSlabStart,
			Width:        DefaultSlabWidth,
			Permittivity: DefaultPermittivity,
		},
		Loss: LossConfig{
			Start:  DefaultLossStart,
			Factor: DefaultLoss,
		},
		Analysis: AnalysisConfig{
			Transform:   string(spectral.MethodDFT),
			CheckFinite: true,
			LogEvery:    DefaultLogEvery,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Engine converts the file layout into the solver's configuration.
func (c *Config) Engine() fdtd.Config {
	return fdtd.Config{
		Cells:         c.Cells,
		Steps:         c.Steps,
		Source:        source.Kind(c.Source.Kind),
		Injection:     fdtd.Injection(c.Source.Injection),
		SourcePos:     c.Source.Position,
		SourceDelay:   c.Source.Delay,
		SourceWidth:   c.Source.Width,
		Wavelength:    c.Source.Wavelength,
		Periods:       c.Source.Periods,
		TFSFBoundary:  c.TFSFBoundary,
		MaterialStart: c.Material.Start,
		MaterialWidth: c.Material.Width,
		Permittivity:  c.Material.Permittivity,
		LossStart:     c.Loss.Start,
		Loss:          c.Loss.Factor,
		Transform:     spectral.Method(c.Analysis.Transform),
		Workers:       c.Analysis.Workers,
		CheckFinite:   c.Analysis.CheckFinite,
		LogEvery:      c.Analysis.LogEvery,
	}
}

func (c *Config) Validate() error {
	switch c.Precision {
	case PrecisionFloat64, PrecisionFloat32:
	default:
		return fmt.Errorf("unknown precision %q", c.Precision)
	}
	return c.Engine().Validate()
}

// Clone returns an independent copy; Config holds no reference types.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
