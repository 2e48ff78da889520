package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fdtd1d/internal/config"
	"github.com/san-kum/fdtd1d/internal/experiment"
)

var ErrNoFeasible = errors.New("optim: no grid point ran successfully")

// Setter writes one scanned value into a configuration.
type Setter func(cfg *config.Config, v float64)

// Params lists the configuration fields a grid search can scan.
var Params = map[string]Setter{
	"permittivity": func(c *config.Config, v float64) { c.Material.Permittivity = v },
	"slab_start":   func(c *config.Config, v float64) { c.Material.Start = int(math.Round(v)) },
	"slab_width":   func(c *config.Config, v float64) { c.Material.Width = int(math.Round(v)) },
	"loss":         func(c *config.Config, v float64) { c.Loss.Factor = v },
	"wavelength":   func(c *config.Config, v float64) { c.Source.Wavelength = v },
	"pulse_width":  func(c *config.Config, v float64) { c.Source.Width = v },
	"delay":        func(c *config.Config, v float64) { c.Source.Delay = v },
}

func ParamNames() []string {
	names := make([]string, 0, len(Params))
	for name := range Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Point is one evaluated grid point. Err is set when the configuration was
// rejected or the run failed; Value is then meaningless.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params for %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := Params[name]; !ok {
			return nil, fmt.Errorf("optim: unknown param %q (available: %v)", name, ParamNames())
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Maximize flips the search to keep the largest metric value.
func (g *GridSearch) Maximize(on bool) *GridSearch {
	g.maximize = on
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs base once per grid point and returns the best parameters,
// their metric value and every point in scan order. Points whose run fails
// are recorded and skipped; cancellation stops the search.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	metricName string,
	logger *log.Logger,
) (map[string]float64, float64, []Point, error) {
	points := make([]Point, 0, g.Size())
	g.searchRecursive(0, make(map[string]float64), &points)

	best := math.Inf(1)
	if g.maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	for i := range points {
		if err := ctx.Err(); err != nil {
			return nil, 0, points[:i], err
		}

		p := &points[i]
		cfg := base.Clone()
		cfg.Name = base.Name + "_scan"
		for name, v := range p.Params {
			Params[name](cfg, v)
		}

		result, err := experiment.New(cfg).Run(ctx, logger)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, points[:i], ctx.Err()
			}
			p.Err = err
			continue
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return nil, 0, points[:i], fmt.Errorf("optim: run produced no metric %q", metricName)
		}
		p.Value = val

		if (g.maximize && val > best) || (!g.maximize && val < best) {
			best = val
			bestParams = p.Params
		}
	}

	if bestParams == nil {
		return nil, 0, points, ErrNoFeasible
	}
	return bestParams, best, points, nil
}

func (g *GridSearch) searchRecursive(depth int, current map[string]float64, out *[]Point) {
	if depth == len(g.paramNames) {
		*out = append(*out, Point{Params: current})
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(depth+1, newParams, out)
	}
}

// ParseRange reads "min:max:n" as n evenly spaced values, or a comma list.
func ParseRange(s string) ([]float64, error) {
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("optim: bad range %q: %w", s, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("optim: bad range %q: need at least one point", s)
		}
		if n == 1 {
			return []float64{lo}, nil
		}
		return floats.Span(make([]float64, n), lo, hi), nil
	}

	var vals []float64
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("optim: bad range %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
