package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-prodattr/pkg/model"
)

const tourCatalog = `
types:
  "7":
    schema:
      meal:
        description: Питание
        fill_type: select
      stars:
        description: Звёздность
        fill_type: radio
    values:
      meal:
        - {id: "1", label: Завтрак}
        - {id: "2", label: Ужин}
      stars:
        - {id: "5", label: "5*"}
`

func mustLoadCatalog(t *testing.T) *MemoryStore {
	t.Helper()
	store, err := LoadYAML(strings.NewReader(tourCatalog))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return store
}

func TestLoadYAML_EmptyDocument(t *testing.T) {
	store, err := LoadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Schema(context.Background(), "7"); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestLoadYAML_RejectsUnknownFields(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("types:\n  \"7\":\n    attributes: {}\n"))
	if err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := mustLoadCatalog(t)

	schema, err := store.Schema(context.Background(), "7")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	schema["meal"]["description"] = "changed"

	again, _ := store.Schema(context.Background(), "7")
	if got := model.PropertyString(again["meal"]["description"]); got != "Питание" {
		t.Fatalf("store mutated through returned schema: %q", got)
	}

	values, _ := store.Values(context.Background(), "7", "meal")
	values[0].Label = "changed"
	again2, _ := store.Values(context.Background(), "7", "meal")
	if again2[0].Label != "Завтрак" {
		t.Fatalf("store mutated through returned values: %q", again2[0].Label)
	}
}
