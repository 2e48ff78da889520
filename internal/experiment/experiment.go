package experiment

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/fdtd1d/internal/config"
)

// Result is a finished run with every buffer widened to float64, so callers
// do not depend on the precision the engine ran in.
type Result struct {
	Name      string
	Precision string
	Config    config.Config
	Cells     int
	Steps     int

	EzT           [][]float64
	HyT           [][]float64
	EzSpectrum    [][]float64
	HySpectrum    [][]float64
	Permittivity  []complex128
	FrequencyAxis []float64

	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	observers []any
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// AddObserver attaches an extra engine observer. o must implement
// fdtd.Observer for the configured precision; Run fails otherwise.
func (e *Experiment) AddObserver(o any) {
	e.observers = append(e.observers, o)
}

// Run validates the configuration, then builds and runs an engine in the
// configured precision. A nil logger discards output.
func (e *Experiment) Run(ctx context.Context, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("experiment %s: %w", e.cfg.Name, err)
	}

	runner, err := e.registry.Get(e.cfg.Precision)
	if err != nil {
		return nil, err
	}

	res, err := runner(ctx, e.cfg, logger.With("run", e.cfg.Name), e.observers...)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", e.cfg.Name, err)
	}
	return res, nil
}

// Config returns the configuration the experiment runs with.
func (e *Experiment) Config() *config.Config {
	return e.cfg
}
