package attrinput

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
	"github.com/goliatone/go-prodattr/pkg/model"
	"github.com/goliatone/go-prodattr/pkg/notify"
	"github.com/goliatone/go-prodattr/pkg/page"
	"github.com/goliatone/go-prodattr/pkg/renderers/vanilla"
	"github.com/goliatone/go-prodattr/pkg/widgets"
)

const ActionValues = dataloader.ActionAttributeValues

// WidgetRenderer turns a view into widget markup.
type WidgetRenderer interface {
	RenderWidget(ctx context.Context, w widgets.Widget, view vanilla.View) (string, error)
}

// Target is an input that can receive widget markup. *page.Input satisfies it.
type Target interface {
	Code() string
	FillType() string
	ReplaceContent(markup string) error
	AppendToList(markup string) error
}

// Document hands out unfilled inputs. *page.Document satisfies it.
type Document interface {
	Claim() []*page.Input
}

// Service loads and writes attribute values.
type Service struct {
	loader     dataloader.Loader
	controller string
	registry   *widgets.Registry
	renderer   WidgetRenderer
	reporter   notify.Reporter
	logger     *zap.Logger
	loads      *semaphore.Weighted
}

// New constructs a Service around loader.
func New(loader dataloader.Loader, options ...Option) (*Service, error) {
	if loader == nil {
		return nil, errors.New("attrinput: loader is required")
	}
	cfg := config{
		controller: dataloader.DefaultController,
		reporter:   notify.Nop(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = widgets.NewRegistry()
	}
	if cfg.renderer == nil {
		renderer, err := vanilla.New(vanilla.WithTheme(cfg.theme))
		if err != nil {
			return nil, fmt.Errorf("attrinput: configure renderer: %w", err)
		}
		cfg.renderer = renderer
	}
	var loads *semaphore.Weighted
	if cfg.maxLoads > 0 {
		loads = semaphore.NewWeighted(cfg.maxLoads)
	}
	return &Service{
		loads:      loads,
		loader:     loader,
		controller: cfg.controller,
		registry:   cfg.registry,
		renderer:   cfg.renderer,
		reporter:   cfg.reporter,
		logger:     cfg.logger,
	}, nil
}

// LoadValues fetches the value list of attribute code for typeID.
func (s *Service) LoadValues(ctx context.Context, typeID, code string) (model.ValueList, error) {
	req := dataloader.NewRequest(s.controller, ActionValues, map[string]string{
		dataloader.ParamType: typeID,
		dataloader.ParamCode: code,
	})
	if s.loads != nil {
		if err := s.loads.Acquire(ctx, 1); err != nil {
			return model.ValueList{}, fmt.Errorf("attrinput: load values %q for type %q: %w", code, typeID, err)
		}
		defer s.loads.Release(1)
	}
	resp, err := s.loader.Load(ctx, req)
	if err != nil {
		return model.ValueList{}, fmt.Errorf("attrinput: load values %q for type %q: %w", code, typeID, err)
	}
	var list model.ValueList
	if err := resp.Decode(&list); err != nil {
		return model.ValueList{}, fmt.Errorf("attrinput: load values %q for type %q: %w", code, typeID, err)
	}
	if list.Items == nil {
		list.Items = []model.AttributeValue{}
	}
	return list, nil
}

// WriteValues renders values with the widget matching the input's fill type.
// An unknown fill type is reported once to the user and leaves the input
// untouched; it is not an error.
func (s *Service) WriteValues(ctx context.Context, input Target, values model.ValueList) error {
	if input == nil {
		return errors.New("attrinput: input is nil")
	}
	raw := input.FillType()
	widget, ok := s.registry.Resolve(widgets.ParseFillType(raw))
	if !ok {
		s.reporter.NotifyError("Unknown input type "+raw, "", true)
		s.logger.Warn("unknown input type",
			zap.String("code", input.Code()),
			zap.String("fill_type", raw))
		return nil
	}

	code := input.Code()
	view := vanilla.NewView(code, string(widget.FillType), values.Items)
	markup, err := s.renderer.RenderWidget(ctx, widget, view)
	if err != nil {
		return fmt.Errorf("attrinput: write values %q: %w", code, err)
	}

	switch widget.Placement {
	case widgets.PlacementReplace:
		err = input.ReplaceContent(markup)
	default:
		err = input.AppendToList(markup)
	}
	if err != nil {
		return fmt.Errorf("attrinput: write values %q: %w", code, err)
	}
	return nil
}

// RenderInputs claims every unfilled input of doc, loads its values for
// typeID and returns the sealed batch. onSuccess may be nil; it runs once
// after the last input is written, or immediately when nothing was claimed.
func (s *Service) RenderInputs(ctx context.Context, doc Document, typeID string, onSuccess func()) (*Batch, error) {
	if doc == nil {
		return nil, errors.New("attrinput: document is nil")
	}
	batch := s.NewBatch()
	batch.OnInit(onSuccess)

	inputs := doc.Claim()
	for _, input := range inputs {
		if err := batch.InitValues(ctx, input, typeID); err != nil {
			batch.Seal()
			return batch, err
		}
	}
	s.logger.Debug("attribute inputs claimed",
		zap.String("batch", batch.ID()),
		zap.String("type", typeID),
		zap.Int("inputs", len(inputs)))

	batch.Seal()
	return batch, nil
}
