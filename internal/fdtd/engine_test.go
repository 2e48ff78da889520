package fdtd_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fdtd1d/internal/fdtd"
	"github.com/san-kum/fdtd1d/internal/grid"
	"github.com/san-kum/fdtd1d/internal/source"
	"github.com/san-kum/fdtd1d/internal/spectral"
)

func smallConfig() fdtd.Config {
	cfg := fdtd.DefaultConfig()
	cfg.Cells = 60
	cfg.Steps = 80
	cfg.SourcePos = 20
	cfg.TFSFBoundary = 20
	cfg.MaterialStart = 35
	cfg.MaterialWidth = 10
	cfg.LossStart = 52
	cfg.Workers = 1
	return cfg
}

type nanWave struct{}

func (nanWave) Value(_, _, _ float64) float64 { return math.NaN() }

type stepCounter struct {
	steps []int
	cells int
}

func (s *stepCounter) OnStep(q int, ez, hy []float64) {
	s.steps = append(s.steps, q)
	s.cells = len(ez)
}

var _ = Describe("Engine", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("construction", func() {
		It("lays out the slab before the run", func() {
			cfg := smallConfig()
			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())

			eps := e.Permittivity()
			Expect(eps).To(HaveLen(cfg.Cells))
			Expect(real(eps[cfg.MaterialStart-1])).To(Equal(1.0))
			Expect(real(eps[cfg.MaterialStart])).To(Equal(cfg.Permittivity))
			Expect(real(eps[cfg.MaterialStart+cfg.MaterialWidth])).To(Equal(cfg.Permittivity))
			Expect(real(eps[cfg.MaterialStart+cfg.MaterialWidth+1])).To(Equal(1.0))
			Expect(e.Done()).To(BeFalse())
			Expect(e.EzSpectrum()).To(BeNil())
		})

		It("returns a grid copy", func() {
			e, err := fdtd.New[float64](smallConfig())
			Expect(err).NotTo(HaveOccurred())

			g := e.Grid()
			g.Ez[5] = 42
			Expect(e.Grid().Ez[5]).To(BeZero())
		})

		DescribeTable("rejects invalid configurations",
			func(mutate func(*fdtd.Config), field string, also error) {
				cfg := smallConfig()
				mutate(&cfg)

				e, err := fdtd.New[float64](cfg)
				Expect(e).To(BeNil())
				Expect(err).To(MatchError(fdtd.ErrInvalidConfig))

				var cerr *fdtd.ConfigError
				Expect(errors.As(err, &cerr)).To(BeTrue())
				Expect(cerr.Field).To(Equal(field))
				if also != nil {
					Expect(errors.Is(err, also)).To(BeTrue())
				}
			},
			Entry("too few cells", func(c *fdtd.Config) { c.Cells = 2 }, "cells", nil),
			Entry("zero steps", func(c *fdtd.Config) { c.Steps = 0 }, "steps", nil),
			Entry("source before grid", func(c *fdtd.Config) { c.SourcePos = -1 }, "source_pos", nil),
			Entry("source past grid", func(c *fdtd.Config) { c.SourcePos = 60 }, "source_pos", nil),
			Entry("tfsf at zero", func(c *fdtd.Config) { c.TFSFBoundary = 0 }, "tfsf_boundary", nil),
			Entry("tfsf at last cell", func(c *fdtd.Config) { c.TFSFBoundary = 59 }, "tfsf_boundary", nil),
			Entry("unknown injection", func(c *fdtd.Config) { c.Injection = "soft" }, "injection", nil),
			Entry("slab past grid", func(c *fdtd.Config) { c.MaterialWidth = 40 }, "layout", grid.ErrLayout),
			Entry("loss of one", func(c *fdtd.Config) { c.Loss = 1 }, "layout", grid.ErrLayout),
			Entry("unknown source", func(c *fdtd.Config) { c.Source = "square" }, "source", source.ErrUnknownKind),
			Entry("zero wavelength", func(c *fdtd.Config) { c.Wavelength = 0 }, "source", source.ErrInvalidParams),
			Entry("unknown transform", func(c *fdtd.Config) { c.Transform = "wavelet" }, "transform", nil),
		)

		It("ignores the tfsf boundary for hard sources", func() {
			cfg := smallConfig()
			cfg.Injection = fdtd.InjectHard
			cfg.TFSFBoundary = 0
			_, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Run", func() {
		It("keeps every field at zero without excitation", func() {
			e, err := fdtd.New[float64](smallConfig(), fdtd.WithWaveform(source.Zero{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())

			for q := range e.EzHistory() {
				for m := range e.EzHistory()[q] {
					Expect(e.EzHistory()[q][m]).To(BeZero())
					Expect(e.HyHistory()[q][m]).To(BeZero())
				}
				for _, v := range e.EzSpectrum()[q] {
					Expect(v).To(BeZero())
				}
			}
		})

		It("fills histories and spectra with the configured shape", func() {
			cfg := smallConfig()
			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())
			Expect(e.Done()).To(BeTrue())
			Expect(e.StepsTaken()).To(Equal(cfg.Steps))

			for _, buf := range [][][]float64{e.EzHistory(), e.HyHistory(), e.EzSpectrum(), e.HySpectrum()} {
				Expect(buf).To(HaveLen(cfg.Steps))
				for _, row := range buf {
					Expect(row).To(HaveLen(cfg.Cells))
				}
			}
			Expect(e.EzSpectrumRaw()).To(HaveLen(cfg.Steps))
			Expect(e.HySpectrumRaw()[0]).To(HaveLen(cfg.Cells))
			Expect(e.FrequencyAxis(1)).To(HaveLen(cfg.Cells/2 + 1))
		})

		It("normalizes each frame to a unit peak", func() {
			e, err := fdtd.New[float64](smallConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())

			for _, frame := range e.EzSpectrum() {
				peak := 0.0
				for _, v := range frame {
					Expect(v).To(BeNumerically(">=", 0))
					Expect(v).To(BeNumerically("<=", 1))
					peak = math.Max(peak, v)
				}
				Expect(peak == 0 || peak == 1).To(BeTrue())
			}
		})

		It("leaves the scattered region untouched until the wave can arrive", func() {
			cfg := smallConfig()
			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())

			b := cfg.TFSFBoundary
			for q := 0; q < cfg.Steps; q++ {
				for m := 0; m < b; m++ {
					if q < b-m {
						Expect(e.EzHistory()[q][m]).To(BeZero(), "Ez q=%d m=%d", q, m)
						Expect(e.HyHistory()[q][m]).To(BeZero(), "Hy q=%d m=%d", q, m)
					}
				}
			}

			excited := false
			for _, v := range e.EzHistory()[cfg.Steps-1][b:] {
				if v != 0 {
					excited = true
				}
			}
			Expect(excited).To(BeTrue())
		})

		It("runs the small harmonic scenario", func() {
			cfg := fdtd.Config{
				Cells: 10, Steps: 5,
				Source: source.KindHarmonic, Injection: fdtd.InjectTFSF,
				SourcePos: 3, TFSFBoundary: 3,
				SourceDelay: 30, Wavelength: 25, Periods: 10,
				MaterialStart: 5, MaterialWidth: 2, Permittivity: 4,
				LossStart: 8, Loss: 0.01,
				Transform: spectral.MethodDFT, CheckFinite: true,
			}
			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())
			Expect(e.EzHistory()).To(HaveLen(5))
			Expect(e.EzHistory()[4]).To(HaveLen(10))

			h, ok := e.Waveform().(source.Harmonic)
			Expect(ok).To(BeTrue())
			prev := -1.0
			for q := 0; q < 5; q++ {
				r := h.Ramp(float64(q))
				Expect(r).To(BeNumerically(">", prev))
				Expect(r).To(BeNumerically("<", 1))
				prev = r
			}
		})

		It("drives the source cell directly in hard mode", func() {
			cfg := smallConfig()
			cfg.Injection = fdtd.InjectHard
			cfg.Source = source.KindGaussian
			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())

			w := e.Waveform()
			for q := 0; q < cfg.Steps; q++ {
				Expect(e.EzHistory()[q][cfg.SourcePos]).To(Equal(w.Value(1, float64(q+1), 0)))
			}
		})

		It("produces the same spectra for any worker count", func() {
			cfg := smallConfig()
			cfg.Workers = 1
			seq, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(seq.Run(ctx)).To(Succeed())

			cfg.Workers = 4
			par, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(par.Run(ctx)).To(Succeed())

			Expect(par.EzSpectrum()).To(Equal(seq.EzSpectrum()))
			Expect(par.HySpectrumRaw()).To(Equal(seq.HySpectrumRaw()))
		})

		It("agrees between dft and fft", func() {
			cfg := smallConfig()
			dft, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(dft.Run(ctx)).To(Succeed())

			cfg.Transform = spectral.MethodFFT
			fft, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(fft.Run(ctx)).To(Succeed())

			q := cfg.Steps - 1
			for k := range dft.EzSpectrumRaw()[q] {
				a, b := dft.EzSpectrumRaw()[q][k], fft.EzSpectrumRaw()[q][k]
				Expect(real(a)).To(BeNumerically("~", real(b), 1e-9))
				Expect(imag(a)).To(BeNumerically("~", imag(b), 1e-9))
			}
		})

		It("notifies observers once per step", func() {
			cfg := smallConfig()
			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())

			obs := &stepCounter{}
			e.AddObserver(obs)
			Expect(e.Run(ctx)).To(Succeed())
			Expect(obs.steps).To(HaveLen(cfg.Steps))
			Expect(obs.steps[cfg.Steps-1]).To(Equal(cfg.Steps - 1))
			Expect(obs.cells).To(Equal(cfg.Cells))
		})

		It("runs only once", func() {
			e, err := fdtd.New[float64](smallConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())
			Expect(e.Run(ctx)).To(MatchError(fdtd.ErrAlreadyRun))
		})

		It("stops on a canceled context", func() {
			e, err := fdtd.New[float64](smallConfig())
			Expect(err).NotTo(HaveOccurred())

			canceled, cancel := context.WithCancel(ctx)
			cancel()
			Expect(e.Run(canceled)).To(MatchError(context.Canceled))
			Expect(e.Done()).To(BeFalse())
			Expect(e.StepsTaken()).To(BeZero())
			Expect(e.Run(ctx)).To(MatchError(fdtd.ErrAlreadyRun))

			_, err = e.Results()
			Expect(err).To(MatchError(fdtd.ErrNotRun))
		})

		It("reports divergence at the first bad step", func() {
			e, err := fdtd.New[float64](smallConfig(), fdtd.WithWaveform(nanWave{}))
			Expect(err).NotTo(HaveOccurred())

			err = e.Run(ctx)
			Expect(err).To(MatchError(fdtd.ErrDiverged))

			var serr *fdtd.SimulationError
			Expect(errors.As(err, &serr)).To(BeTrue())
			Expect(serr.Step).To(Equal(0))
			Expect(math.IsNaN(serr.Value)).To(BeTrue())
			Expect(e.Done()).To(BeFalse())

			_, err = e.Results()
			Expect(err).To(MatchError(fdtd.ErrNotRun))
		})

		It("hands out results only after a completed run", func() {
			cfg := smallConfig()
			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())

			res, err := e.Results()
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(fdtd.ErrNotRun))

			Expect(e.Run(ctx)).To(Succeed())
			res, err = e.Results()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.EzT).To(HaveLen(cfg.Steps))
			Expect(res.HySpectrum).To(HaveLen(cfg.Steps))
			Expect(res.Permittivity).To(HaveLen(cfg.Cells))
			Expect(res.FrequencyAxis).To(HaveLen(cfg.Cells/2 + 1))
			Expect(res.EzT[cfg.Steps-1]).To(Equal(e.EzHistory()[cfg.Steps-1]))
		})

		It("runs through non-finite values when the check is off", func() {
			cfg := smallConfig()
			cfg.CheckFinite = false
			e, err := fdtd.New[float64](cfg, fdtd.WithWaveform(nanWave{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(ctx)).To(Succeed())
			Expect(e.Done()).To(BeTrue())
		})

		It("runs in single precision", func() {
			cfg := smallConfig()
			e32, err := fdtd.New[float32](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e32.Run(ctx)).To(Succeed())

			e64, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e64.Run(ctx)).To(Succeed())

			q := cfg.Steps - 1
			for m := range e64.EzHistory()[q] {
				Expect(float64(e32.EzHistory()[q][m])).To(BeNumerically("~", e64.EzHistory()[q][m], 1e-3))
			}
		})
	})
})
