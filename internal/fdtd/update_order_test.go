package fdtd_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fdtd1d/internal/fdtd"
	"github.com/san-kum/fdtd1d/internal/grid"
	"github.com/san-kum/fdtd1d/internal/phys"
	"github.com/san-kum/fdtd1d/internal/source"
)

type constWave float64

func (c constWave) Value(_, _, _ float64) float64 { return float64(c) }

// referenceRun advances a fresh grid one statement at a time in the
// documented order and records both fields after every step.
func referenceRun(cfg fdtd.Config, wave source.Waveform) (ezT, hyT [][]float64) {
	g := grid.New[float64](cfg.Cells)
	Expect(g.Apply(cfg.Layout())).To(Succeed())

	nx := cfg.Cells
	ez, hy := g.Ez, g.Hy
	sc := float64(phys.Courant)

	for q := 0; q < cfg.Steps; q++ {
		hy[nx-2] = hy[nx-1]
		for m := 0; m < nx-2; m++ {
			hy[m] = g.ChyH[m]*hy[m] + g.ChyE[m]*(ez[m+1]-ez[m])
		}

		if cfg.Injection == fdtd.InjectTFSF {
			b := cfg.TFSFBoundary
			hy[b-1] -= wave.Value(sc, float64(q), 0) * g.ChyE[b]
			ez[b] += wave.Value(sc, float64(q)+0.5, -0.5)
		}

		ez[0] = ez[1]
		for m := 1; m < nx-1; m++ {
			ez[m] = g.CezE[m]*ez[m] + g.CezH[m]*(hy[m]-hy[m-1])
		}

		if cfg.Injection == fdtd.InjectHard {
			ez[cfg.SourcePos] = wave.Value(sc, float64(q+1), 0)
		}

		ezT = append(ezT, append([]float64(nil), ez...))
		hyT = append(hyT, append([]float64(nil), hy...))
	}
	return ezT, hyT
}

func orderConfig() fdtd.Config {
	cfg := fdtd.DefaultConfig()
	cfg.Cells = 40
	cfg.Steps = 60
	cfg.TFSFBoundary = 10
	cfg.SourcePos = 10
	cfg.MaterialStart = 20
	cfg.MaterialWidth = 8
	cfg.Permittivity = 4
	cfg.LossStart = 32
	cfg.Loss = 0.02
	cfg.Workers = 1
	return cfg
}

var _ = Describe("update order", func() {
	DescribeTable("matches the step-by-step loop sample for sample",
		func(mutate func(*fdtd.Config)) {
			cfg := orderConfig()
			mutate(&cfg)

			e, err := fdtd.New[float64](cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Run(context.Background())).To(Succeed())

			wantEz, wantHy := referenceRun(cfg, e.Waveform())
			for q := 0; q < cfg.Steps; q++ {
				for m := 0; m < cfg.Cells; m++ {
					Expect(e.EzHistory()[q][m]).To(Equal(wantEz[q][m]), "Ez q=%d m=%d", q, m)
					Expect(e.HyHistory()[q][m]).To(Equal(wantHy[q][m]), "Hy q=%d m=%d", q, m)
				}
			}
		},
		Entry("tfsf harmonic", func(c *fdtd.Config) {}),
		Entry("tfsf gaussian", func(c *fdtd.Config) { c.Source = source.KindGaussian }),
		Entry("tfsf ricker", func(c *fdtd.Config) { c.Source = source.KindRicker; c.Wavelength = 20 }),
		Entry("hard gaussian", func(c *fdtd.Config) {
			c.Source = source.KindGaussian
			c.Injection = fdtd.InjectHard
			c.SourcePos = 15
		}),
	)

	It("pins the boundary cells over the first steps", func() {
		cfg := fdtd.DefaultConfig()
		cfg.Cells = 6
		cfg.Steps = 3
		cfg.TFSFBoundary = 2
		cfg.SourcePos = 2
		cfg.MaterialStart = 0
		cfg.MaterialWidth = 0
		cfg.Permittivity = 1
		cfg.LossStart = 5
		cfg.Loss = 0
		cfg.Workers = 1

		e, err := fdtd.New[float64](cfg, fdtd.WithWaveform(constWave(1)))
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Run(context.Background())).To(Succeed())

		// Hy in units of 1/Eta0.
		wantEz := [][]float64{
			{0, -1, 2, 0, 0, 0},
			{-1, 1, 0, 2, 0, 0},
			{1, -1, 2, 0, 2, 0},
		}
		wantHy := [][]float64{
			{0, -1, 0, 0, 0, 0},
			{-1, 1, -2, 0, 0, 0},
			{1, -1, 0, -2, 0, 0},
		}

		k := 1 / phys.Eta0
		for q := range wantEz {
			for m := range wantEz[q] {
				Expect(e.EzHistory()[q][m]).To(BeNumerically("~", wantEz[q][m], 1e-12), "Ez q=%d m=%d", q, m)
				Expect(e.HyHistory()[q][m]).To(BeNumerically("~", wantHy[q][m]*k, 1e-15), "Hy q=%d m=%d", q, m)
			}
			Expect(e.HyHistory()[q][cfg.Cells-2]).To(BeZero(), "Hy[NX-2] q=%d", q)
		}
	})
})
