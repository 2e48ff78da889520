package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/san-kum/fdtd1d/internal/experiment"
	"github.com/san-kum/fdtd1d/internal/metrics"
	"github.com/san-kum/fdtd1d/internal/phys"
	"github.com/san-kum/fdtd1d/internal/spectral"
)

func lineData(ys []float64) []opts.LineData {
	items := make([]opts.LineData, len(ys))
	for i, y := range ys {
		items[i] = opts.LineData{Value: y}
	}
	return items
}

func newLine(title, subtitle, xName, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	return line
}

// HTMLReport renders a page with the field profile at step, the one-sided
// spectra at that step, the permittivity profile and the field energy over
// time.
func HTMLReport(w io.Writer, result *experiment.Result, step int) error {
	if step < 0 || step >= len(result.EzT) {
		return fmt.Errorf("report: step %d outside [0, %d)", step, len(result.EzT))
	}

	cells := make([]int, result.Cells)
	for m := range cells {
		cells[m] = m
	}

	hy := make([]float64, len(result.HyT[step]))
	for m, v := range result.HyT[step] {
		hy[m] = phys.Eta0 * v
	}

	profile := newLine("Field profile", fmt.Sprintf("%s, step %d", result.Name, step), "cell", "field")
	profile.SetXAxis(cells).
		AddSeries("Ez", lineData(result.EzT[step])).
		AddSeries("eta0*Hy", lineData(hy))

	bins := len(result.FrequencyAxis)
	labels := make([]string, bins)
	for k, f := range result.FrequencyAxis {
		labels[k] = fmt.Sprintf("%.3f", f)
	}
	spectrum := newLine("Spectrum", fmt.Sprintf("normalized magnitude, step %d", step), "cycles/sample", "|X|")
	spectrum.SetXAxis(labels).
		AddSeries("|Ez|", lineData(oneSided(result.EzSpectrum[step], bins))).
		AddSeries("|Hy|", lineData(oneSided(result.HySpectrum[step], bins)))

	re := make([]float64, len(result.Permittivity))
	im := make([]float64, len(result.Permittivity))
	for m, v := range result.Permittivity {
		re[m], im[m] = real(v), imag(v)
	}
	material := newLine("Permittivity", "relative, per cell", "cell", "eps_r")
	material.SetXAxis(cells).
		AddSeries("Re", lineData(re)).
		AddSeries("Im", lineData(im))

	steps := make([]int, len(result.EzT))
	energy := make([]float64, len(result.EzT))
	for q := range result.EzT {
		steps[q] = q
		energy[q] = metrics.FieldEnergy(result.EzT[q], result.HyT[q])
	}
	energyLine := newLine("Field energy", "sum Ez^2 + eta0^2 sum Hy^2", "step", "energy")
	energyLine.SetXAxis(steps).AddSeries("energy", lineData(energy))

	page := components.NewPage()
	page.PageTitle = "fdtd1d: " + result.Name
	page.AddCharts(profile, spectrum, material, energyLine)
	return page.Render(w)
}

func oneSided(mags []float64, bins int) []float64 {
	if bins > len(mags) {
		bins = len(mags)
	}
	return mags[:bins]
}

func ExportHTML(path string, result *experiment.Result, step int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return HTMLReport(file, result, step)
}

// PeakFrequency returns the frequency of the strongest one-sided bin of the
// Ez spectrum at step, or -1 when the frame is empty.
func PeakFrequency(result *experiment.Result, step int) float64 {
	if step < 0 || step >= len(result.EzSpectrum) {
		return -1
	}
	bins := len(result.FrequencyAxis)
	k := spectral.PeakBin(oneSided(result.EzSpectrum[step], bins))
	if k < 0 || k >= bins {
		return -1
	}
	return result.FrequencyAxis[k]
}
