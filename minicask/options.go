package minicask

import (
	"expvar"
	"log/slog"

	"github.com/0xRadioAc7iv/minicask/internal"
)

type Option func(*internal.Config)

// WithDataFile points the store at a specific data file path.
func WithDataFile(path string) Option {
	return func(c *internal.Config) {
		c.DataFile = path
	}
}

// WithLogger routes the store's logs to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

// WithMetrics wires write counters into the store. Either counter may
// be nil to skip it.
func WithMetrics(bytesWritten, recordsWritten *expvar.Int) Option {
	return func(c *internal.Config) {
		c.BytesWritten = bytesWritten
		c.RecordsWritten = recordsWritten
	}
}
