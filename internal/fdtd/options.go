package fdtd

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/fdtd1d/internal/source"
)

type options struct {
	logger   *log.Logger
	waveform source.Waveform
}

type Option func(*options)

// WithLogger routes engine logs to l. Engines log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWaveform replaces the waveform built from Config.Source.
func WithWaveform(w source.Waveform) Option {
	return func(o *options) {
		o.waveform = w
	}
}

func defaultOptions() options {
	return options{logger: log.New(io.Discard)}
}
