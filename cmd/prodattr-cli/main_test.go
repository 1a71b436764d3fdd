package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-prodattr/components/catalog"
)

const cliCatalog = `
types:
  "7":
    schema:
      meal: {description: Питание, fill_type: select}
      stars: {description: Звёздность, fill_type: radio}
    values:
      meal:
        - {id: "1", label: Завтрак}
`

type fakePrompter struct {
	inputs   []string
	selected string
	asked    []string
	options  []string
}

func (p *fakePrompter) Input(ctx context.Context, message, help string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.inputs) == 0 {
		return "", errAborted
	}
	out := p.inputs[0]
	p.inputs = p.inputs[1:]
	return out, nil
}

func (p *fakePrompter) Select(ctx context.Context, message string, options []string) (string, error) {
	p.asked = append(p.asked, message)
	p.options = append([]string(nil), options...)
	return p.selected, nil
}

func newBackend(t *testing.T) string {
	t.Helper()
	store, err := catalog.LoadYAML(strings.NewReader(cliCatalog))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	srv := httptest.NewServer(catalog.New(catalog.WithStore(store)).Handler())
	t.Cleanup(srv.Close)
	return srv.URL + "/api/products"
}

func runCLI(t *testing.T, prompt prompter, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &out, prompt)
	return out.String(), err
}

func TestDescribe_WithFlags(t *testing.T) {
	endpoint := newBackend(t)

	out, err := runCLI(t, &fakePrompter{}, "", "-endpoint", endpoint, "describe", "-type", "7", "-code", "stars")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if strings.TrimSpace(out) != "Звёздность" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDescribe_PromptsForMissingArguments(t *testing.T) {
	endpoint := newBackend(t)
	prompt := &fakePrompter{inputs: []string{"7"}, selected: "meal"}

	out, err := runCLI(t, prompt, "", "-endpoint", endpoint, "describe")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if strings.TrimSpace(out) != "Питание" {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Join(prompt.options, ",") != "meal,stars" {
		t.Fatalf("unexpected select options %v", prompt.options)
	}
}

func TestDescribe_PredefinedCodeNeedsNoBackendData(t *testing.T) {
	endpoint := newBackend(t)

	out, err := runCLI(t, &fakePrompter{}, "", "-endpoint", endpoint, "describe", "-type", "99", "-code", "date_begin")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if strings.TrimSpace(out) != "Дата начала" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLabel(t *testing.T) {
	out, err := runCLI(t, &fakePrompter{}, "", "label", "69")
	if err != nil {
		t.Fatalf("label: %v", err)
	}
	if strings.TrimSpace(out) != "Отмена бронирования" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := runCLI(t, &fakePrompter{}, "", "label", "999"); err == nil {
		t.Fatalf("expected error for unknown value")
	}
}

func TestLabel_PromptAborted(t *testing.T) {
	if _, err := runCLI(t, &fakePrompter{}, "", "label"); err != errAborted {
		t.Fatalf("expected errAborted, got %v", err)
	}
}

func TestRender_StdinToFile(t *testing.T) {
	endpoint := newBackend(t)
	target := filepath.Join(t.TempDir(), "out.html")
	form := `<select class="js__fill-attribute-values" data-code="meal" data-fill-type="select"></select>`

	out, err := runCLI(t, &fakePrompter{}, form, "-endpoint", endpoint, "render", "-type", "7", "-out", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Page written to") {
		t.Fatalf("unexpected output %q", out)
	}

	written, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(written), `<option value="1">Завтрак</option>`) {
		t.Fatalf("unexpected page:\n%s", written)
	}
}

func TestRender_RequiresEndpoint(t *testing.T) {
	t.Setenv("PRODATTR_BACKEND_ENDPOINT", "")
	if _, err := runCLI(t, &fakePrompter{}, "<p></p>", "render", "-type", "7"); err == nil {
		t.Fatalf("expected error without endpoint")
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := runCLI(t, &fakePrompter{}, "", "frobnicate"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := runCLI(t, &fakePrompter{}, ""); err == nil {
		t.Fatalf("expected usage error")
	}
}
