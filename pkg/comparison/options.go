package comparison

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/logging"
)

type options struct {
	maxTools int
	resolver ToolResolver
	observer Observer
	logger   *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		maxTools: constants.MaxComparisonTools,
		observer: nopObserver{},
		logger:   logging.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithMaxTools lowers the comparison capacity. It cannot exceed constants.MaxComparisonTools.
func WithMaxTools(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxComparisonTools {
			return &errors.ValidationError{
				Field:   "max_tools",
				Value:   n,
				Message: "must be between 1 and 5",
			}
		}
		o.maxTools = n
		return nil
	}
}

// WithResolver sets where tool details come from. Defaults to the remote store
// when it also implements ToolResolver.
func WithResolver(resolver ToolResolver) Option {
	return func(o *options) error {
		if resolver == nil {
			return &errors.ValidationError{Field: "resolver", Message: "cannot be nil"}
		}
		o.resolver = resolver
		return nil
	}
}

// WithObserver sets the event observer.
func WithObserver(observer Observer) Option {
	return func(o *options) error {
		if observer != nil {
			o.observer = observer
		}
		return nil
	}
}

// WithLogger sets the logger used when no logger is attached to the call context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}
