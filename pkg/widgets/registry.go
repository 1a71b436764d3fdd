package widgets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FillType selects the rendering strategy for an attribute input.
type FillType string

// Built-in fill types.
const (
	FillSelect           FillType = "select"
	FillRadio            FillType = "radio"
	FillCheckbox         FillType = "checkbox"
	FillCheckboxSpecific FillType = "checkbox-specific"
	FillComplexity       FillType = "complexity"
	FillComplexitySpan   FillType = "complexity-span"
)

// ParseFillType normalises raw into a FillType.
func ParseFillType(raw string) FillType {
	return FillType(strings.ToLower(strings.TrimSpace(raw)))
}

// Placement describes where rendered markup goes.
type Placement int

const (
	// PlacementReplace replaces the input's content.
	PlacementReplace Placement = iota
	// PlacementAppend appends to the input's list container.
	PlacementAppend
)

func (p Placement) String() string {
	switch p {
	case PlacementReplace:
		return "replace"
	case PlacementAppend:
		return "append"
	default:
		return fmt.Sprintf("placement(%d)", int(p))
	}
}

// Widget binds a fill type to its template partial and placement.
type Widget struct {
	FillType  FillType
	Partial   string
	Placement Placement
}

// PartialName returns the theme partial key for a fill type.
func PartialName(fill FillType) string {
	return "attributes." + string(fill)
}

// Registry resolves fill types to widgets. The zero value is not usable; use
// NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	widgets map[FillType]Widget
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{widgets: make(map[FillType]Widget)}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a widget. Partial defaults to PartialName.
func (r *Registry) Register(w Widget) error {
	if r == nil {
		return errors.New("widgets: registry is nil")
	}
	w.FillType = ParseFillType(string(w.FillType))
	if w.FillType == "" {
		return errors.New("widgets: fill type is required")
	}
	if strings.TrimSpace(w.Partial) == "" {
		w.Partial = PartialName(w.FillType)
	}
	if w.Placement != PlacementReplace && w.Placement != PlacementAppend {
		return fmt.Errorf("widgets: unsupported placement %s for %q", w.Placement, w.FillType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.widgets[w.FillType] = w
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(w Widget) {
	if err := r.Register(w); err != nil {
		panic(err)
	}
}

// Resolve returns the widget for fill.
func (r *Registry) Resolve(fill FillType) (Widget, bool) {
	if r == nil {
		return Widget{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[ParseFillType(string(fill))]
	return w, ok
}

// List returns the registered fill types in lexical order.
func (r *Registry) List() []FillType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FillType, 0, len(r.widgets))
	for fill := range r.widgets {
		out = append(out, fill)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(Widget{FillType: FillSelect, Placement: PlacementReplace})
	r.MustRegister(Widget{FillType: FillRadio, Placement: PlacementAppend})
	r.MustRegister(Widget{FillType: FillCheckbox, Placement: PlacementAppend})
	r.MustRegister(Widget{FillType: FillCheckboxSpecific, Placement: PlacementReplace})
	r.MustRegister(Widget{FillType: FillComplexity, Placement: PlacementAppend})
	r.MustRegister(Widget{FillType: FillComplexitySpan, Placement: PlacementAppend})
}
