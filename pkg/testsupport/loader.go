package testsupport

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
	"github.com/goliatone/go-prodattr/pkg/model"
)

const (
	actionSchema = dataloader.ActionAttributeSchema
	actionValues = dataloader.ActionAttributeValues
)

// StubLoader is an in-memory dataloader.Loader serving schemas and value
// lists keyed by product type. Value loads can be held open per attribute
// code to exercise batch ordering.
type StubLoader struct {
	mu      sync.Mutex
	schemas map[string]model.Schema
	values  map[string]map[string][]model.AttributeValue
	errs    map[string]error
	holds   map[string]chan struct{}
	calls   []dataloader.Request
}

// NewStubLoader returns an empty StubLoader.
func NewStubLoader() *StubLoader {
	return &StubLoader{
		schemas: make(map[string]model.Schema),
		values:  make(map[string]map[string][]model.AttributeValue),
		errs:    make(map[string]error),
		holds:   make(map[string]chan struct{}),
	}
}

// WithSchema registers the schema served for typeID.
func (l *StubLoader) WithSchema(typeID string, schema model.Schema) *StubLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.schemas[typeID] = schema
	return l
}

// WithValues registers the values served for typeID and code.
func (l *StubLoader) WithValues(typeID, code string, values ...model.AttributeValue) *StubLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.values[typeID] == nil {
		l.values[typeID] = make(map[string][]model.AttributeValue)
	}
	l.values[typeID][code] = append([]model.AttributeValue(nil), values...)
	return l
}

// FailValues makes value loads for code fail with err.
func (l *StubLoader) FailValues(code string, err error) *StubLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs[code] = err
	return l
}

// Hold blocks value loads for code until the returned release func is called.
func (l *StubLoader) Hold(code string) (release func()) {
	ch := make(chan struct{})
	l.mu.Lock()
	l.holds[code] = ch
	l.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Calls returns a copy of the requests received so far.
func (l *StubLoader) Calls() []dataloader.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]dataloader.Request(nil), l.calls...)
}

// CallCount returns how many requests named action.
func (l *StubLoader) CallCount(action string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, call := range l.calls {
		if call.Action == action {
			count++
		}
	}
	return count
}

// Load implements dataloader.Loader.
func (l *StubLoader) Load(ctx context.Context, req dataloader.Request) (dataloader.Response, error) {
	typeID := req.Param(dataloader.ParamType)
	code := req.Param(dataloader.ParamCode)

	l.mu.Lock()
	l.calls = append(l.calls, req)
	hold := l.holds[code]
	failure := l.errs[code]
	l.mu.Unlock()

	switch req.Action {
	case actionSchema:
		l.mu.Lock()
		schema := l.schemas[typeID]
		l.mu.Unlock()
		return dataloader.JSONResponse(model.SchemaPayload{Schema: schema})
	case actionValues:
		if hold != nil {
			select {
			case <-hold:
			case <-ctx.Done():
				return dataloader.Response{}, ctx.Err()
			}
		}
		if failure != nil {
			return dataloader.Response{}, failure
		}
		l.mu.Lock()
		items := l.values[typeID][code]
		l.mu.Unlock()
		if items == nil {
			items = []model.AttributeValue{}
		}
		return dataloader.JSONResponse(model.ValueList{Items: items})
	default:
		return dataloader.Response{}, fmt.Errorf("testsupport: unsupported action %q", req.Action)
	}
}
