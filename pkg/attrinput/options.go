package attrinput

import (
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-prodattr/pkg/notify"
	"github.com/goliatone/go-prodattr/pkg/widgets"
)

// Option configures a Service.
type Option func(*config)

type config struct {
	controller string
	registry   *widgets.Registry
	renderer   WidgetRenderer
	reporter   notify.Reporter
	logger     *zap.Logger
	theme      *theme.RendererConfig
	maxLoads   int64
}

// WithController overrides the backend controller name.
func WithController(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.controller = trimmed
		}
	}
}

// WithRegistry replaces the widget registry used to resolve fill types.
func WithRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithRenderer supplies the widget renderer. WithTheme is ignored when a
// renderer is provided.
func WithRenderer(renderer WidgetRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithReporter sets the error reporter.
func WithReporter(reporter notify.Reporter) Option {
	return func(cfg *config) {
		if reporter != nil {
			cfg.reporter = reporter
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTheme passes theme partial overrides and asset URLs to the default
// renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithMaxConcurrentLoads caps how many value loads run at once across all
// batches of the service. Zero or less means unbounded.
func WithMaxConcurrentLoads(n int) Option {
	return func(cfg *config) {
		cfg.maxLoads = int64(n)
	}
}
