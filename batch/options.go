package batch

import (
	"context"

	"github.com/rs/zerolog"
)

// Option configures Run.
type Option func(*options)

type options struct {
	ctx       context.Context
	chunkSize int
	logger    zerolog.Logger
}

func defaultOptions() options {
	return options{
		ctx:    context.Background(),
		logger: zerolog.Nop(),
	}
}

// WithContext sets a cancellation context covering the whole batch.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithChunkSize bounds the number of scenarios evaluated concurrently,
// capping the number of cloned ledgers live at once. Zero or negative
// means unbounded.
func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

// WithLogger sets the logger used to report per-scenario failures.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}
