package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/fdtd1d/internal/config"
	"github.com/san-kum/fdtd1d/internal/experiment"
	"github.com/san-kum/fdtd1d/internal/export"
	"github.com/san-kum/fdtd1d/internal/spectral"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Field names a stored per-step buffer; each is one CSV file in the run dir.
type Field string

const (
	FieldEz         Field = "ez"
	FieldHy         Field = "hy"
	FieldEzSpectrum Field = "ez_spectrum"
	FieldHySpectrum Field = "hy_spectrum"
)

func Fields() []Field {
	return []Field{FieldEz, FieldHy, FieldEzSpectrum, FieldHySpectrum}
}

func ParseField(s string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q (want one of %v)", s, Fields())
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Cells     int                `json:"cells"`
	Steps     int                `json:"steps"`
	Source    string             `json:"source"`
	Injection string             `json:"injection"`
	Precision string             `json:"precision"`
	Transform string             `json:"transform"`
	Metrics   map[string]float64 `json:"metrics"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Config    config.Config      `json:"config"`
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.createRunDir(result.Name, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      result.Name,
		Timestamp: now,
		Cells:     result.Cells,
		Steps:     result.Steps,
		Source:    result.Config.Source.Kind,
		Injection: result.Config.Source.Injection,
		Precision: result.Precision,
		Transform: result.Config.Analysis.Transform,
		Metrics:   result.Metrics,
		Elapsed:   result.Elapsed,
		Config:    result.Config,
	}

	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *experiment.Result) error {
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	buffers := map[Field][][]float64{
		FieldEz:         result.EzT,
		FieldHy:         result.HyT,
		FieldEzSpectrum: result.EzSpectrum,
		FieldHySpectrum: result.HySpectrum,
	}
	for field, frames := range buffers {
		if err := writeFrames(filepath.Join(runDir, string(field)+".csv"), frames); err != nil {
			return fmt.Errorf("write %s: %w", field, err)
		}
	}

	if err := writePermittivity(filepath.Join(runDir, "permittivity.csv"), result.Permittivity); err != nil {
		return fmt.Errorf("write permittivity: %w", err)
	}
	return nil
}

// createRunDir claims <name>_<unixnano>, adding a counter if two saves land
// on the same timestamp.
func (s *Store) createRunDir(name string, now time.Time) (string, string, error) {
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%d", name, now.UnixNano())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s_%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)

		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

// writeFile creates path, hands it to write and reports the first of the
// write and close errors.
func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeFrames(path string, frames [][]float64) error {
	return writeFile(path, func(w io.Writer) error {
		return export.WriteCSV(w, frames)
	})
}

func writePermittivity(path string, eps []complex128) error {
	return writeFile(path, func(file io.Writer) error {
		w := csv.NewWriter(file)
		if err := w.Write([]string{"cell", "real", "imag"}); err != nil {
			return err
		}
		for m, v := range eps {
			if err := w.Write([]string{strconv.Itoa(m), formatFloat(real(v)), formatFloat(imag(v))}); err != nil {
				return err
			}
		}

		w.Flush()
		return w.Error()
	})
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: invalid id %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadField reads one stored buffer as steps x cells.
func (s *Store) LoadField(runID string, field Field) ([][]float64, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(dir, string(field)+".csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrRunNotFound, runID, field)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, nil
	}

	frames := make([][]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		frame := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d col %d: %w", field, i, j, err)
			}
			frame = append(frame, val)
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

func (s *Store) LoadPermittivity(runID string) ([]complex128, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(dir, "permittivity.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/permittivity", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	eps := make([]complex128, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 3 {
			return nil, fmt.Errorf("permittivity row %d: short record", i)
		}
		re, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			return nil, err
		}
		im, err := strconv.ParseFloat(records[i][2], 64)
		if err != nil {
			return nil, err
		}
		eps = append(eps, complex(re, im))
	}
	return eps, nil
}

// LoadResult rebuilds the full result of a stored run.
func (s *Store) LoadResult(runID string) (*experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	res := &experiment.Result{
		Name:          meta.Name,
		Precision:     meta.Precision,
		Config:        meta.Config,
		Cells:         meta.Cells,
		Steps:         meta.Steps,
		Metrics:       meta.Metrics,
		Elapsed:       meta.Elapsed,
		FrequencyAxis: spectral.FrequencyAxis(meta.Cells, 0),
	}

	targets := map[Field]*[][]float64{
		FieldEz:         &res.EzT,
		FieldHy:         &res.HyT,
		FieldEzSpectrum: &res.EzSpectrum,
		FieldHySpectrum: &res.HySpectrum,
	}
	for field, dst := range targets {
		if *dst, err = s.LoadField(runID, field); err != nil {
			return nil, err
		}
	}

	if res.Permittivity, err = s.LoadPermittivity(runID); err != nil {
		return nil, err
	}
	return res, nil
}
