package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fdtd1d/internal/config"
	"github.com/san-kum/fdtd1d/internal/experiment"
)

// Complex is a JSON-friendly complex number.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

type ExportData struct {
	Name          string             `json:"name"`
	Precision     string             `json:"precision"`
	Cells         int                `json:"cells"`
	Steps         int                `json:"steps"`
	Config        config.Config      `json:"config"`
	FrequencyAxis []float64          `json:"frequency_axis"`
	Permittivity  []Complex          `json:"permittivity"`
	EzT           [][]float64        `json:"ez"`
	HyT           [][]float64        `json:"hy"`
	EzSpectrum    [][]float64        `json:"ez_spectrum"`
	HySpectrum    [][]float64        `json:"hy_spectrum"`
	Metrics       map[string]float64 `json:"metrics"`
	ElapsedNS     int64              `json:"elapsed_ns"`
}

func newExportData(result *experiment.Result) ExportData {
	eps := make([]Complex, len(result.Permittivity))
	for i, v := range result.Permittivity {
		eps[i] = Complex{Re: real(v), Im: imag(v)}
	}

	return ExportData{
		Name:          result.Name,
		Precision:     result.Precision,
		Cells:         result.Cells,
		Steps:         result.Steps,
		Config:        result.Config,
		FrequencyAxis: result.FrequencyAxis,
		Permittivity:  eps,
		EzT:           result.EzT,
		HyT:           result.HyT,
		EzSpectrum:    result.EzSpectrum,
		HySpectrum:    result.HySpectrum,
		Metrics:       result.Metrics,
		ElapsedNS:     result.Elapsed.Nanoseconds(),
	}
}

// WriteJSON encodes the full run, histories included.
func WriteJSON(w io.Writer, result *experiment.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(result))
}

func ExportJSON(path string, result *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, result); err != nil {
		return err
	}
	return file.Close()
}
