package experiment

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/san-kum/fdtd1d/internal/config"
)

// Sweep runs every configuration concurrently, one engine per goroutine.
// Results keep the order of cfgs; the first error in that order is returned.
func Sweep(ctx context.Context, cfgs []*config.Config, logger *log.Logger) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, c *config.Config) {
			defer wg.Done()
			results[idx], errs[idx] = New(c).Run(ctx, logger)
		}(i, cfg)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
