package attrschema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
	"github.com/goliatone/go-prodattr/pkg/labels"
	"github.com/goliatone/go-prodattr/pkg/model"
)

const (
	ActionSchema = dataloader.ActionAttributeSchema

	// PropertyDescription is the schema property holding the attribute caption.
	PropertyDescription = "description"
)

// Option configures a Service.
type Option func(*config)

type config struct {
	controller   string
	descriptions labels.Dictionary
	logger       *zap.Logger
}

// WithController overrides the backend controller name.
func WithController(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.controller = trimmed
		}
	}
}

// WithDescriptions replaces the predefined descriptions consulted before the
// schema is fetched.
func WithDescriptions(dict labels.Dictionary) Option {
	return func(cfg *config) {
		cfg.descriptions = dict
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

// Service loads attribute properties from the backend schema.
type Service struct {
	loader       dataloader.Loader
	controller   string
	descriptions labels.Dictionary
	logger       *zap.Logger
}

// New constructs a Service around loader.
func New(loader dataloader.Loader, options ...Option) (*Service, error) {
	if loader == nil {
		return nil, errors.New("attrschema: loader is required")
	}
	cfg := config{
		controller:   dataloader.DefaultController,
		descriptions: labels.DefaultDescriptions(),
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Service{
		loader:       loader,
		controller:   cfg.controller,
		descriptions: cfg.descriptions,
		logger:       cfg.logger,
	}, nil
}

// LoadSchema fetches the attribute schema for typeID.
func (s *Service) LoadSchema(ctx context.Context, typeID string) (model.Schema, error) {
	req := dataloader.NewRequest(s.controller, ActionSchema, map[string]string{
		dataloader.ParamType: typeID,
	})
	resp, err := s.loader.Load(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("attrschema: load schema for type %q: %w", typeID, err)
	}
	var payload model.SchemaPayload
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("attrschema: load schema for type %q: %w", typeID, err)
	}
	if payload.Schema == nil {
		payload.Schema = model.Schema{}
	}
	return payload.Schema, nil
}

// LoadProperty fetches the schema and returns property of attribute. A
// missing attribute or property yields a *LookupError.
func (s *Service) LoadProperty(ctx context.Context, typeID, attribute, property string) (any, error) {
	schema, err := s.LoadSchema(ctx, typeID)
	if err != nil {
		return nil, err
	}
	return PropertyFromSchema(schema, typeID, attribute, property)
}

// LoadDescription returns the caption for attribute. Predefined codes are
// answered locally; everything else reads the schema description.
func (s *Service) LoadDescription(ctx context.Context, typeID, attribute string) (string, error) {
	if label, ok := s.descriptions.Lookup(attribute); ok {
		return label, nil
	}
	value, err := s.LoadProperty(ctx, typeID, attribute, PropertyDescription)
	if err != nil {
		return "", err
	}
	s.logger.Debug("attribute description loaded",
		zap.String("type", typeID),
		zap.String("attribute", attribute))
	return model.PropertyString(value), nil
}

// PropertyFromSchema looks up property on attribute in schema.
func PropertyFromSchema(schema model.Schema, typeID, attribute, property string) (any, error) {
	attr, ok := schema.Attribute(attribute)
	if !ok {
		return nil, &LookupError{TypeID: typeID, Attribute: attribute}
	}
	value, ok := attr.Property(property)
	if !ok {
		return nil, &LookupError{TypeID: typeID, Attribute: attribute, Property: property}
	}
	return value, nil
}
