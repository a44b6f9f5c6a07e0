package shiftboard

import "net/http"

// Option configures a Board with optional dependencies.
type Option func(*boardOptions)

// boardOptions holds optional Board configuration.
type boardOptions struct {
	logger    Logger
	metrics   MetricsCollector
	hooks     *Hooks
	publisher Publisher
	httpc     *http.Client
}

// WithLogger sets a logger. The default discards everything.
//
// Example:
//
//	logger := logging.NewSlog(slog.Default())
//	board, err := shiftboard.NewBoard(&cfg, view, shiftboard.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *boardOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Example:
//
//	collector := metrics.NewPrometheus("shiftboard", registry)
//	board, err := shiftboard.NewBoard(&cfg, view, shiftboard.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *boardOptions) {
		o.metrics = metrics
	}
}

// WithHooks sets lifecycle event hooks.
//
// Example:
//
//	hooks := &shiftboard.Hooks{
//	    OnAssignmentChanged: func(ctx context.Context, date string, employees []string) error {
//	        return audit(date, employees)
//	    },
//	}
//	board, err := shiftboard.NewBoard(&cfg, view, shiftboard.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *boardOptions) {
		o.hooks = hooks
	}
}

// WithPublisher sets a publisher for violation-change events, published on
// Config.ViolationSubject each time an applied check changes the set.
//
// Example:
//
//	pub, err := notify.NewNATS(conn)
//	board, err := shiftboard.NewBoard(&cfg, view, shiftboard.WithPublisher(pub))
func WithPublisher(publisher Publisher) Option {
	return func(o *boardOptions) {
		o.publisher = publisher
	}
}

// WithHTTPClient sets a custom HTTP client, replacing the default client
// built from Config.RequestTimeout.
func WithHTTPClient(httpc *http.Client) Option {
	return func(o *boardOptions) {
		o.httpc = httpc
	}
}
