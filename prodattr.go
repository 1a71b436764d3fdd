package prodattr

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-prodattr/pkg/attrinput"
	"github.com/goliatone/go-prodattr/pkg/attrschema"
	"github.com/goliatone/go-prodattr/pkg/dataloader"
	"github.com/goliatone/go-prodattr/pkg/labels"
	"github.com/goliatone/go-prodattr/pkg/model"
	"github.com/goliatone/go-prodattr/pkg/notify"
	"github.com/goliatone/go-prodattr/pkg/widgets"
)

// Option configures a Module.
type Option func(*config)

type config struct {
	controller string
	labels     labels.Set
	reporter   notify.Reporter
	logger     *zap.Logger
	theme      *theme.RendererConfig
	registry   *widgets.Registry
	renderer   attrinput.WidgetRenderer
	maxLoads   int
}

// WithController overrides the backend controller name.
func WithController(name string) Option {
	return func(cfg *config) { cfg.controller = name }
}

// WithLabels replaces the predefined description and boolean label sets.
func WithLabels(set labels.Set) Option {
	return func(cfg *config) { cfg.labels = set }
}

// WithReporter sets where non-fatal UI errors are sent.
func WithReporter(reporter notify.Reporter) Option {
	return func(cfg *config) { cfg.reporter = reporter }
}

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithTheme applies go-theme partial overrides and asset URLs to widgets.
func WithTheme(rc *theme.RendererConfig) Option {
	return func(cfg *config) { cfg.theme = rc }
}

// WithRegistry replaces the widget registry, e.g. to add fill types.
func WithRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) { cfg.registry = registry }
}

// WithRenderer replaces the widget renderer.
func WithRenderer(renderer attrinput.WidgetRenderer) Option {
	return func(cfg *config) { cfg.renderer = renderer }
}

// WithMaxConcurrentLoads caps concurrent value loads.
func WithMaxConcurrentLoads(n int) Option {
	return func(cfg *config) { cfg.maxLoads = n }
}

// Module is the entry point for attribute lookups and input rendering.
type Module struct {
	schema *attrschema.Service
	inputs *attrinput.Service
	labels labels.Set
}

// New builds a Module that fetches data through loader.
func New(loader dataloader.Loader, options ...Option) (*Module, error) {
	if loader == nil {
		return nil, errors.New("prodattr: loader is required")
	}
	cfg := config{labels: labels.Defaults()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	schema, err := attrschema.New(loader,
		attrschema.WithController(cfg.controller),
		attrschema.WithDescriptions(cfg.labels.Descriptions),
		attrschema.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("prodattr: %w", err)
	}

	inputs, err := attrinput.New(loader,
		attrinput.WithController(cfg.controller),
		attrinput.WithRegistry(cfg.registry),
		attrinput.WithRenderer(cfg.renderer),
		attrinput.WithReporter(cfg.reporter),
		attrinput.WithLogger(cfg.logger),
		attrinput.WithTheme(cfg.theme),
		attrinput.WithMaxConcurrentLoads(cfg.maxLoads),
	)
	if err != nil {
		return nil, fmt.Errorf("prodattr: %w", err)
	}

	return &Module{schema: schema, inputs: inputs, labels: cfg.labels}, nil
}

// Schema exposes the attribute schema service.
func (m *Module) Schema() *attrschema.Service { return m.schema }

// Inputs exposes the attribute input service.
func (m *Module) Inputs() *attrinput.Service { return m.inputs }

// LoadSchema fetches the attribute schema of typeID.
func (m *Module) LoadSchema(ctx context.Context, typeID string) (model.Schema, error) {
	return m.schema.LoadSchema(ctx, typeID)
}

// LoadProperty fetches one property of an attribute.
func (m *Module) LoadProperty(ctx context.Context, typeID, code, property string) (any, error) {
	return m.schema.LoadProperty(ctx, typeID, code, property)
}

// LoadDescription resolves the caption of attribute code.
func (m *Module) LoadDescription(ctx context.Context, typeID, code string) (string, error) {
	return m.schema.LoadDescription(ctx, typeID, code)
}

// RenderInputs fills every unclaimed input of doc. See attrinput.Service.
func (m *Module) RenderInputs(ctx context.Context, doc attrinput.Document, typeID string, onSuccess func()) (*attrinput.Batch, error) {
	return m.inputs.RenderInputs(ctx, doc, typeID, onSuccess)
}

// LabelForBooleanValue returns the module's label for a boolean attribute
// value, or "".
func (m *Module) LabelForBooleanValue(value string) string {
	return m.labels.LabelForBooleanValue(value)
}

// LabelForBooleanValue returns the built-in label for a boolean attribute
// value, or "" when the value is not predefined.
func LabelForBooleanValue(value string) string {
	return labels.LabelForBooleanValue(value)
}
