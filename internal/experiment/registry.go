package experiment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"

	"github.com/san-kum/fdtd1d/internal/config"
	"github.com/san-kum/fdtd1d/internal/fdtd"
	"github.com/san-kum/fdtd1d/internal/metrics"
)

// Runner runs one configuration to completion. extra holds additional
// observers for the runner's scalar type.
type Runner func(ctx context.Context, cfg *config.Config, logger *log.Logger, extra ...any) (*Result, error)

type Registry struct {
	runners map[string]Runner
}

func NewRegistry() *Registry {
	r := &Registry{
		runners: make(map[string]Runner),
	}

	r.runners[config.PrecisionFloat64] = run[float64]
	r.runners[config.PrecisionFloat32] = run[float32]

	return r
}

func (r *Registry) Get(precision string) (Runner, error) {
	fn, ok := r.runners[precision]
	if !ok {
		return nil, fmt.Errorf("unknown precision: %s", precision)
	}
	return fn, nil
}

func (r *Registry) Precisions() []string {
	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the metric set attached to every experiment. The
// transmission probe sits one cell past the slab.
func DefaultMetrics[T constraints.Float](cfg *config.Config) []metrics.Metric[T] {
	probe := cfg.Material.Start + cfg.Material.Width + 1
	if probe > cfg.Cells-2 {
		probe = cfg.Cells - 2
	}

	return []metrics.Metric[T]{
		metrics.NewEnergy[T](),
		metrics.NewPeak[T](),
		metrics.NewStability[T](StabilityThreshold),
		metrics.NewTransmission[T](probe),
	}
}

// StabilityThreshold is the |Ez| bound above which a step counts as unstable.
const StabilityThreshold = 10.0

func run[T constraints.Float](ctx context.Context, cfg *config.Config, logger *log.Logger, extra ...any) (*Result, error) {
	engine, err := fdtd.New[T](cfg.Engine(), fdtd.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	for _, o := range extra {
		obs, ok := o.(fdtd.Observer[T])
		if !ok {
			return nil, fmt.Errorf("observer %T does not accept %s fields", o, cfg.Precision)
		}
		engine.AddObserver(obs)
	}

	ms := DefaultMetrics[T](cfg)
	for _, m := range ms {
		m.Reset()
		engine.AddObserver(m)
	}

	start := time.Now()
	if err := engine.Run(ctx); err != nil {
		return nil, err
	}

	out, err := engine.Results()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Name:          cfg.Name,
		Precision:     cfg.Precision,
		Config:        *cfg,
		Cells:         cfg.Cells,
		Steps:         cfg.Steps,
		EzT:           widen(out.EzT),
		HyT:           widen(out.HyT),
		EzSpectrum:    out.EzSpectrum,
		HySpectrum:    out.HySpectrum,
		Permittivity:  append([]complex128(nil), out.Permittivity...),
		FrequencyAxis: out.FrequencyAxis,
		Metrics:       make(map[string]float64, len(ms)),
		Elapsed:       time.Since(start),
	}
	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

func widen[T constraints.Float](in [][]T) [][]float64 {
	out := make([][]float64, len(in))
	for i, row := range in {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = float64(v)
		}
	}
	return out
}
