package prodattr_test

import (
	"context"
	"errors"
	"io/fs"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	prodattr "github.com/goliatone/go-prodattr"
	"github.com/goliatone/go-prodattr/components/catalog"
	"github.com/goliatone/go-prodattr/pkg/attrschema"
	"github.com/goliatone/go-prodattr/pkg/dataloader"
	"github.com/goliatone/go-prodattr/pkg/labels"
	"github.com/goliatone/go-prodattr/pkg/model"
	"github.com/goliatone/go-prodattr/pkg/page"
	"github.com/goliatone/go-prodattr/pkg/testsupport"
)

const catalogYAML = `
types:
  "7":
    schema:
      meal: {description: Питание, fill_type: select}
      level: {description: Сложность, fill_type: complexity}
    values:
      meal:
        - {id: "1", label: Завтрак}
        - {id: "2", label: Ужин}
      level:
        - {id: "1", label: Лёгкая}
        - {id: "3", label: Сложная}
`

const adminForm = `<html><body><form>
<select class="js__fill-attribute-values" data-code="meal" data-fill-type="select"></select>
<div class="js__fill-attribute-values" data-code="level" data-fill-type="complexity"><div class="js__attributes-list-container"></div></div>
</form></body></html>`

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := catalog.LoadYAML(strings.NewReader(catalogYAML))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	component := catalog.New(catalog.WithStore(store))
	srv := httptest.NewServer(component.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newModule(t *testing.T, loader dataloader.Loader, opts ...prodattr.Option) *prodattr.Module {
	t.Helper()
	mod, err := prodattr.New(loader, opts...)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return mod
}

func TestModule_RendersInputsOverHTTP(t *testing.T) {
	srv := newCatalogServer(t)
	mod := newModule(t, prodattr.NewLoader(dataloader.WithEndpoint(srv.URL+"/api/products")))

	doc, err := page.ParseString(adminForm)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	done := 0
	batch, err := mod.RenderInputs(context.Background(), doc, "7", func() { done++ })
	if err != nil {
		t.Fatalf("render inputs: %v", err)
	}
	if err := batch.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	<-batch.Finished()
	if done != 1 {
		t.Fatalf("expected callback once, got %d", done)
	}

	out := doc.String()
	for _, want := range []string{
		`<option value="1">Завтрак</option><option value="2">Ужин</option>`,
		`class="checkbox complexity-color-3"`,
		`js__fill-attribute-completed`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestModule_LoadDescriptionOverHTTP(t *testing.T) {
	srv := newCatalogServer(t)
	mod := newModule(t, prodattr.NewLoader(dataloader.WithEndpoint(srv.URL+"/api/products")))

	got, err := mod.LoadDescription(context.Background(), "7", "level")
	if err != nil {
		t.Fatalf("load description: %v", err)
	}
	if got != "Сложность" {
		t.Fatalf("unexpected description %q", got)
	}

	_, err = mod.LoadDescription(context.Background(), "7", "missing")
	if !errors.Is(err, attrschema.ErrAttributeNotFound) {
		t.Fatalf("expected ErrAttributeNotFound, got %v", err)
	}
}

func TestModule_PredefinedDescriptionsSkipLoader(t *testing.T) {
	stub := testsupport.NewStubLoader()
	mod := newModule(t, stub)

	got, err := mod.LoadDescription(context.Background(), "7", "price_min")
	if err != nil {
		t.Fatalf("load description: %v", err)
	}
	if got != "Цена от" {
		t.Fatalf("unexpected description %q", got)
	}
	if len(stub.Calls()) != 0 {
		t.Fatalf("expected no loader calls, got %d", len(stub.Calls()))
	}
}

func TestModule_LabelOverrides(t *testing.T) {
	set, err := labels.LoadYAML(strings.NewReader("descriptions:\n  tags: Tags\nboolean_values:\n  \"15\": Meals\n"))
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	stub := testsupport.NewStubLoader().WithSchema("7", model.Schema{"meal": {"description": "Питание"}})
	mod := newModule(t, stub, prodattr.WithLabels(set))

	if got, _ := mod.LoadDescription(context.Background(), "7", "tags"); got != "Tags" {
		t.Fatalf("expected overridden description, got %q", got)
	}
	if got := mod.LabelForBooleanValue("15"); got != "Meals" {
		t.Fatalf("expected overridden label, got %q", got)
	}
	if got := mod.LabelForBooleanValue("67"); got != "Предоплата" {
		t.Fatalf("expected default label, got %q", got)
	}
}

func TestLabelForBooleanValue(t *testing.T) {
	if got := prodattr.LabelForBooleanValue("15"); got != "Питание" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := prodattr.LabelForBooleanValue("999"); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
}

func TestNew_RequiresLoader(t *testing.T) {
	if _, err := prodattr.New(nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	matches, err := fs.Glob(prodattr.EmbeddedTemplates(), "templates/attributes/*.tmpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	want := []string{
		"templates/attributes/checkbox-specific.tmpl",
		"templates/attributes/checkbox.tmpl",
		"templates/attributes/complexity-span.tmpl",
		"templates/attributes/complexity.tmpl",
		"templates/attributes/radio.tmpl",
		"templates/attributes/select.tmpl",
	}
	if diff := cmp.Diff(want, matches); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
}
