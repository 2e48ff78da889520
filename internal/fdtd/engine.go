package fdtd

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"

	"github.com/san-kum/fdtd1d/internal/grid"
	"github.com/san-kum/fdtd1d/internal/phys"
	"github.com/san-kum/fdtd1d/internal/source"
	"github.com/san-kum/fdtd1d/internal/spectral"
)

// Observer is notified after every completed step. ez and hy are the
// recorded history rows for step q and must not be modified.
type Observer[T constraints.Float] interface {
	OnStep(q int, ez, hy []T)
}

type Engine[T constraints.Float] struct {
	cfg       Config
	grid      *grid.Grid[T]
	src       source.Waveform
	logger    *log.Logger
	observers []Observer[T]

	ezT, hyT       [][]T
	ezF, hyF       [][]complex128
	ezNorm, hyNorm [][]float64

	ran        bool
	done       bool
	stepsTaken int
}

// New validates cfg, lays out the grid materials and allocates the history
// buffers. Nothing is allocated when cfg is rejected.
func New[T constraints.Float](cfg Config, opts ...Option) (*Engine[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := grid.New[T](cfg.Cells)
	if err := g.Apply(cfg.Layout()); err != nil {
		return nil, &ConfigError{Field: "layout", Reason: err.Error(), Err: err}
	}

	src := o.waveform
	if src == nil {
		var err error
		src, err = source.New(cfg.Source, cfg.SourceParams(), g.RefractiveIndex(cfg.SourcePos))
		if err != nil {
			return nil, &ConfigError{Field: "source", Reason: err.Error(), Err: err}
		}
	}

	return &Engine[T]{
		cfg:    cfg,
		grid:   g,
		src:    src,
		logger: o.logger,
		ezT:    history[T](cfg.Steps, cfg.Cells),
		hyT:    history[T](cfg.Steps, cfg.Cells),
	}, nil
}

// history allocates rows x cols backed by one contiguous block.
func history[T any](rows, cols int) [][]T {
	backing := make([]T, rows*cols)
	out := make([][]T, rows)
	for i := range out {
		out[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out
}

func (e *Engine[T]) AddObserver(o Observer[T]) { e.observers = append(e.observers, o) }

// Run executes the full simulation and then computes the spectra. It may be
// called once; later calls return ErrAlreadyRun.
func (e *Engine[T]) Run(ctx context.Context) error {
	if e.ran {
		return ErrAlreadyRun
	}
	e.ran = true

	start := time.Now()
	e.logger.Debug("run start",
		"cells", e.cfg.Cells, "steps", e.cfg.Steps,
		"source", e.cfg.Source, "injection", e.cfg.Injection)

	for q := 0; q < e.cfg.Steps; q++ {
		select {
		case <-ctx.Done():
			e.logger.Warn("run canceled", "step", q)
			return ctx.Err()
		default:
		}

		e.step(q)

		copy(e.ezT[q], e.grid.Ez)
		copy(e.hyT[q], e.grid.Hy)
		e.stepsTaken++

		for _, obs := range e.observers {
			obs.OnStep(q, e.ezT[q], e.hyT[q])
		}

		if e.cfg.CheckFinite {
			if err := e.checkFinite(q); err != nil {
				e.logger.Error("run diverged", "err", err)
				return err
			}
		}

		if e.cfg.LogEvery > 0 && q%e.cfg.LogEvery == 0 {
			e.logger.Debug("step", "q", q, "peak_ez", peakAbs(e.ezT[q]))
		}
	}

	e.computeSpectra()
	e.done = true

	e.logger.Info("run complete",
		"cells", e.cfg.Cells, "steps", e.stepsTaken,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (e *Engine[T]) step(q int) {
	g := e.grid
	nx := g.N
	ez, hy := g.Ez, g.Hy
	sc := float64(phys.Courant)

	// Hy[NX-1] is never advanced, so this holds Hy[NX-2] at its value.
	hy[nx-2] = hy[nx-1]

	for m := 0; m < nx-2; m++ {
		hy[m] = g.ChyH[m]*hy[m] + g.ChyE[m]*(ez[m+1]-ez[m])
	}

	if e.cfg.Injection == InjectTFSF {
		b := e.cfg.TFSFBoundary
		hy[b-1] -= T(e.src.Value(sc, float64(q), 0)) * g.ChyE[b]
		ez[b] += T(e.src.Value(sc, float64(q)+0.5, -0.5))
	}

	ez[0] = ez[1]

	for m := 1; m < nx-1; m++ {
		ez[m] = g.CezE[m]*ez[m] + g.CezH[m]*(hy[m]-hy[m-1])
	}

	if e.cfg.Injection == InjectHard {
		ez[e.cfg.SourcePos] = T(e.src.Value(sc, float64(q+1), 0))
	}
}

func (e *Engine[T]) checkFinite(q int) error {
	rows := []struct {
		field string
		data  []T
	}{{"Ez", e.ezT[q]}, {"Hy", e.hyT[q]}}

	for _, row := range rows {
		for m, v := range row.data {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return &SimulationError{Step: q, Cell: m, Field: row.field, Value: f, Wrapped: ErrDiverged}
			}
		}
	}
	return nil
}

// computeSpectra transforms every recorded frame of both histories. Frames
// are independent, so the work is split across workers.
func (e *Engine[T]) computeSpectra() {
	n := e.cfg.Steps
	e.ezF = make([][]complex128, n)
	e.hyF = make([][]complex128, n)
	e.ezNorm = make([][]float64, n)
	e.hyNorm = make([][]float64, n)

	ParallelFor(n, e.cfg.Workers, 4, func(start, end int) {
		for q := start; q < end; q++ {
			e.ezF[q] = spectral.Transform(e.cfg.Transform, e.ezT[q])
			e.hyF[q] = spectral.Transform(e.cfg.Transform, e.hyT[q])
			e.ezNorm[q] = spectral.Normalize(spectral.Magnitudes(e.ezF[q]))
			e.hyNorm[q] = spectral.Normalize(spectral.Magnitudes(e.hyF[q]))
		}
	})
}

func peakAbs[T constraints.Float](row []T) float64 {
	var peak float64
	for _, v := range row {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	return peak
}

// Results bundles the buffers of a completed run.
type Results[T constraints.Float] struct {
	EzT, HyT               [][]T
	EzSpectrum, HySpectrum [][]float64
	Permittivity           []complex128
	FrequencyAxis          []float64
}

// Results returns ErrNotRun until Run has finished, including after a
// canceled or diverged run.
func (e *Engine[T]) Results() (*Results[T], error) {
	if !e.done {
		return nil, ErrNotRun
	}
	return &Results[T]{
		EzT:           e.ezT,
		HyT:           e.hyT,
		EzSpectrum:    e.ezNorm,
		HySpectrum:    e.hyNorm,
		Permittivity:  e.grid.EpsR,
		FrequencyAxis: e.FrequencyAxis(0),
	}, nil
}

func (e *Engine[T]) EzHistory() [][]T { return e.ezT }
func (e *Engine[T]) HyHistory() [][]T { return e.hyT }

// EzSpectrum returns the per-frame normalized magnitudes, nil before a
// completed run.
func (e *Engine[T]) EzSpectrum() [][]float64 { return e.ezNorm }
func (e *Engine[T]) HySpectrum() [][]float64 { return e.hyNorm }

func (e *Engine[T]) EzSpectrumRaw() [][]complex128 { return e.ezF }
func (e *Engine[T]) HySpectrumRaw() [][]complex128 { return e.hyF }

// Permittivity returns the complex relative permittivity of every cell.
func (e *Engine[T]) Permittivity() []complex128 { return e.grid.EpsR }

// FrequencyAxis returns the one-sided bin centres for a frame of Cells
// samples taken at rate fs.
func (e *Engine[T]) FrequencyAxis(fs float64) []float64 {
	return spectral.FrequencyAxis(e.cfg.Cells, fs)
}

// Grid returns a deep copy of the current grid.
func (e *Engine[T]) Grid() *grid.Grid[T] { return e.grid.Clone() }

func (e *Engine[T]) Config() Config            { return e.cfg }
func (e *Engine[T]) Done() bool                { return e.done }
func (e *Engine[T]) StepsTaken() int           { return e.stepsTaken }
func (e *Engine[T]) Waveform() source.Waveform { return e.src }
