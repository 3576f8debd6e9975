package reconciler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/pedigreecheck/pkg/constants"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/report"
)

// Options configures a reconciler.
type options struct {
	minChipDigits int
	nearMatch     bool
	threshold     int
	workers       int
	sink          report.Sink
	logger        *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		minChipDigits: constants.MinChipDigits,
		threshold:     constants.DefaultNearMatchThreshold,
		workers:       constants.DefaultWorkers,
		sink:          report.Discard,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithMinChipDigits sets the digit count below which a chip code is flagged.
func WithMinChipDigits(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{
				Field:   "min_chip_digits",
				Value:   n,
				Message: "must be at least 1",
			}
		}
		o.minChipDigits = n
		return nil
	}
}

// WithNearMatch enables the near-match person tier with the given
// similarity threshold (0-100).
func WithNearMatch(threshold int) Option {
	return func(o *options) error {
		if threshold < 0 || threshold > 100 {
			return &errors.ValidationError{
				Field:   "near_match.threshold",
				Value:   threshold,
				Message: "must be between 0 and 100",
			}
		}
		o.nearMatch = true
		o.threshold = threshold
		return nil
	}
}

// WithWorkers sets how many submitted records are checked concurrently.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxWorkers {
			return &errors.ValidationError{
				Field:   "workers",
				Value:   n,
				Message: fmt.Sprintf("must be between 1 and %d", constants.MaxWorkers),
			}
		}
		o.workers = n
		return nil
	}
}

// WithSink sets the sink that receives every outcome as it is emitted.
func WithSink(sink report.Sink) Option {
	return func(o *options) error {
		if sink == nil {
			return &errors.ValidationError{
				Field:   "sink",
				Message: "cannot be nil",
			}
		}
		o.sink = sink
		return nil
	}
}

// WithLogger sets the diagnostic logger. Without it the logger carried by the
// context passed to Reconcile is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
