package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_Builtins(t *testing.T) {
	reg := NewRegistry()

	want := []FillType{
		FillCheckbox,
		FillCheckboxSpecific,
		FillComplexity,
		FillComplexitySpan,
		FillRadio,
		FillSelect,
	}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("builtins mismatch (-want +got):\n%s", diff)
	}

	placements := map[FillType]Placement{
		FillSelect:           PlacementReplace,
		FillRadio:            PlacementAppend,
		FillCheckbox:         PlacementAppend,
		FillCheckboxSpecific: PlacementReplace,
		FillComplexity:       PlacementAppend,
		FillComplexitySpan:   PlacementAppend,
	}
	for fill, placement := range placements {
		w, ok := reg.Resolve(fill)
		if !ok {
			t.Fatalf("%s not registered", fill)
		}
		if w.Placement != placement {
			t.Fatalf("%s: want placement %s, got %s", fill, placement, w.Placement)
		}
		if w.Partial != "attributes."+string(fill) {
			t.Fatalf("%s: unexpected partial %q", fill, w.Partial)
		}
	}
}

func TestRegistry_ResolveNormalises(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resolve(" Select "); !ok {
		t.Fatalf("expected case/whitespace-insensitive resolution")
	}
	if _, ok := reg.Resolve("toggle"); ok {
		t.Fatalf("unexpected widget for unknown fill type")
	}
	var nilReg *Registry
	if _, ok := nilReg.Resolve(FillSelect); ok {
		t.Fatalf("nil registry must not resolve")
	}
}

func TestRegistry_RegisterCustom(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Widget{FillType: "rating", Partial: "custom.rating", Placement: PlacementAppend}); err != nil {
		t.Fatalf("register: %v", err)
	}
	w, ok := reg.Resolve("rating")
	if !ok || w.Partial != "custom.rating" {
		t.Fatalf("unexpected widget: %+v", w)
	}

	if err := reg.Register(Widget{}); err == nil {
		t.Fatalf("expected error for empty fill type")
	}
	if err := reg.Register(Widget{FillType: "bad", Placement: Placement(9)}); err == nil {
		t.Fatalf("expected error for unknown placement")
	}
}
