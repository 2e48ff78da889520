package fdtd

import (
	"fmt"

	"github.com/san-kum/fdtd1d/internal/grid"
	"github.com/san-kum/fdtd1d/internal/source"
	"github.com/san-kum/fdtd1d/internal/spectral"
)

type Injection string

const (
	// InjectTFSF adds a one-way wave at the TFSF boundary.
	InjectTFSF Injection = "tfsf"
	// InjectHard overwrites Ez at the source cell after each E update.
	InjectHard Injection = "hard"
)

// Config fixes every structural parameter of a run.
type Config struct {
	Cells int
	Steps int

	Source      source.Kind
	Injection   Injection
	SourcePos   int
	SourceDelay float64
	SourceWidth float64
	Wavelength  float64
	Periods     int

	TFSFBoundary int

	MaterialStart int
	MaterialWidth int
	Permittivity  float64
	LossStart     int
	Loss          float64

	Transform   spectral.Method
	Workers     int
	CheckFinite bool
	LogEvery    int
}

func DefaultConfig() Config {
	return Config{
		Cells:         200,
		Steps:         450,
		Source:        source.KindHarmonic,
		Injection:     InjectTFSF,
		SourcePos:     50,
		SourceDelay:   30,
		SourceWidth:   10,
		Wavelength:    25,
		Periods:       10,
		TFSFBoundary:  50,
		MaterialStart: 100,
		MaterialWidth: 50,
		Permittivity:  4,
		LossStart:     180,
		Loss:          0.02,
		Transform:     spectral.MethodDFT,
		CheckFinite:   true,
		LogEvery:      100,
	}
}

// Layout returns the material layout portion of the config.
func (c Config) Layout() grid.Layout {
	return grid.Layout{
		MaterialStart: c.MaterialStart,
		MaterialWidth: c.MaterialWidth,
		Permittivity:  c.Permittivity,
		LossStart:     c.LossStart,
		Loss:          c.Loss,
	}
}

// SourceParams returns the waveform portion of the config.
func (c Config) SourceParams() source.Params {
	return source.Params{
		Delay:      c.SourceDelay,
		Width:      c.SourceWidth,
		Wavelength: c.Wavelength,
		Periods:    c.Periods,
	}
}

// Validate reports the first structural problem with c, wrapped in a
// *ConfigError.
func (c Config) Validate() error {
	if c.Cells < 3 {
		return &ConfigError{Field: "cells", Reason: fmt.Sprintf("need at least 3, got %d", c.Cells)}
	}
	if c.Steps < 1 {
		return &ConfigError{Field: "steps", Reason: fmt.Sprintf("must be positive, got %d", c.Steps)}
	}
	if c.SourcePos < 0 || c.SourcePos >= c.Cells {
		return &ConfigError{Field: "source_pos", Reason: fmt.Sprintf("%d outside [0, %d)", c.SourcePos, c.Cells)}
	}

	switch c.Injection {
	case InjectTFSF:
		if c.TFSFBoundary < 1 || c.TFSFBoundary >= c.Cells-1 {
			return &ConfigError{Field: "tfsf_boundary",
				Reason: fmt.Sprintf("%d outside [1, %d)", c.TFSFBoundary, c.Cells-1)}
		}
	case InjectHard:
	default:
		return &ConfigError{Field: "injection", Reason: fmt.Sprintf("unknown mode %q", c.Injection)}
	}

	if err := c.Layout().Validate(c.Cells); err != nil {
		return &ConfigError{Field: "layout", Reason: err.Error(), Err: err}
	}
	if _, err := source.New(c.Source, c.SourceParams(), 1); err != nil {
		return &ConfigError{Field: "source", Reason: err.Error(), Err: err}
	}
	if _, err := spectral.ParseMethod(string(c.Transform)); err != nil {
		return &ConfigError{Field: "transform", Reason: err.Error(), Err: err}
	}
	if c.LogEvery < 0 {
		return &ConfigError{Field: "log_every", Reason: "must not be negative"}
	}
	return nil
}
