package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-prodattr/pkg/model"
)

type productType struct {
	schema model.Schema
	values map[string][]model.AttributeValue
}

// MemoryStore keeps product types in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	types map[string]*productType
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{types: make(map[string]*productType)}
}

// PutSchema registers the schema of typeID, creating the type if needed.
func (s *MemoryStore) PutSchema(typeID string, schema model.Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.typeLocked(typeID)
	t.schema = cloneSchema(schema)
}

// PutValues registers the value list of code for typeID.
func (s *MemoryStore) PutValues(typeID, code string, values []model.AttributeValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.typeLocked(typeID)
	t.values[code] = append([]model.AttributeValue{}, values...)
}

func (s *MemoryStore) typeLocked(typeID string) *productType {
	t, ok := s.types[typeID]
	if !ok {
		t = &productType{schema: model.Schema{}, values: make(map[string][]model.AttributeValue)}
		s.types[typeID] = t
	}
	return t
}

func (s *MemoryStore) Schema(ctx context.Context, typeID string) (model.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, typeID)
	}
	return cloneSchema(t.schema), nil
}

func (s *MemoryStore) Values(ctx context.Context, typeID, code string) ([]model.AttributeValue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, typeID)
	}
	return append([]model.AttributeValue{}, t.values[code]...), nil
}

func cloneSchema(schema model.Schema) model.Schema {
	out := make(model.Schema, len(schema))
	for code, attr := range schema {
		props := make(model.Attribute, len(attr))
		for name, value := range attr {
			props[name] = value
		}
		out[code] = props
	}
	return out
}

// catalogDocument is the YAML layout:
//
//	types:
//	  "7":
//	    schema:
//	      meal: {description: Питание, fill_type: select}
//	    values:
//	      meal:
//	        - {id: "1", label: Завтрак}
type catalogDocument struct {
	Types map[string]struct {
		Schema map[string]map[string]any         `yaml:"schema"`
		Values map[string][]model.AttributeValue `yaml:"values"`
	} `yaml:"types"`
}

// LoadYAML builds a MemoryStore from a YAML catalog.
func LoadYAML(r io.Reader) (*MemoryStore, error) {
	store := NewMemoryStore()
	if r == nil {
		return store, nil
	}
	var doc catalogDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return store, nil
		}
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	for typeID, entry := range doc.Types {
		schema := make(model.Schema, len(entry.Schema))
		for code, props := range entry.Schema {
			schema[code] = model.Attribute(props)
		}
		store.PutSchema(typeID, schema)
		for code, values := range entry.Values {
			store.PutValues(typeID, code, values)
		}
	}
	return store, nil
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadYAML(f)
}
