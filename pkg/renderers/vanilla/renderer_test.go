package vanilla_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-prodattr/pkg/model"
	"github.com/goliatone/go-prodattr/pkg/renderers/vanilla"
	"github.com/goliatone/go-prodattr/pkg/testsupport"
	"github.com/goliatone/go-prodattr/pkg/widgets"
)

var sampleValues = []model.AttributeValue{
	{ID: "3", Label: "Лёгкая"},
	{ID: "1", Label: "Средняя"},
	{ID: "7", Label: "Сложная"},
}

func TestRenderWidget_OneUnitPerValueInOrder(t *testing.T) {
	renderer := newRenderer(t)
	registry := widgets.NewRegistry()

	cases := []struct {
		fill  widgets.FillType
		tag   string
		attr  string
		extra int
	}{
		{fill: widgets.FillSelect, tag: "option", attr: "value", extra: 1},
		{fill: widgets.FillRadio, tag: "input", attr: "value"},
		{fill: widgets.FillCheckbox, tag: "input", attr: "value"},
		{fill: widgets.FillCheckboxSpecific, tag: "input", attr: "value"},
		{fill: widgets.FillComplexity, tag: "input", attr: "value"},
		{fill: widgets.FillComplexitySpan, tag: "span", attr: "data-complexity"},
	}

	for _, tc := range cases {
		t.Run(string(tc.fill), func(t *testing.T) {
			w, ok := registry.Resolve(tc.fill)
			if !ok {
				t.Fatalf("widget %s not registered", tc.fill)
			}
			out, err := renderer.RenderWidget(testsupport.Context(), w, vanilla.NewView("difficulty", string(tc.fill), sampleValues))
			if err != nil {
				t.Fatalf("render: %v", err)
			}

			nodes := findAll(parseFragment(t, out), tc.tag)
			if len(nodes) != len(sampleValues)+tc.extra {
				t.Fatalf("expected %d <%s>, got %d in %s", len(sampleValues)+tc.extra, tc.tag, len(nodes), out)
			}

			var ids []string
			for _, node := range nodes[tc.extra:] {
				ids = append(ids, attr(node, tc.attr))
			}
			if diff := cmp.Diff([]string{"3", "1", "7"}, ids); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}

			if tc.fill != widgets.FillComplexitySpan {
				for _, value := range sampleValues {
					if !strings.Contains(out, value.Label) {
						t.Fatalf("label %q missing from %s", value.Label, out)
					}
				}
			}
		})
	}
}

func TestRenderWidget_SelectLeadsWithPlaceholder(t *testing.T) {
	renderer := newRenderer(t)
	w, _ := widgets.NewRegistry().Resolve(widgets.FillSelect)

	out, err := renderer.RenderWidget(testsupport.Context(), w, vanilla.NewView("country", "", sampleValues[:1]))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	options := findAll(parseFragment(t, out), "option")
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if !hasAttr(options[0], "disabled") || !hasAttr(options[0], "selected") {
		t.Fatalf("placeholder option must be disabled and selected: %s", out)
	}
	if text(options[1]) != "Лёгкая" {
		t.Fatalf("unexpected option label %q", text(options[1]))
	}
}

func TestRenderWidget_RadioUsesInputCode(t *testing.T) {
	renderer := newRenderer(t)
	w, _ := widgets.NewRegistry().Resolve(widgets.FillRadio)

	out, err := renderer.RenderWidget(testsupport.Context(), w, vanilla.NewView("food", "", sampleValues))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, input := range findAll(parseFragment(t, out), "input") {
		if attr(input, "name") != "food" || attr(input, "type") != "radio" {
			t.Fatalf("unexpected radio input attrs: %+v", input.Attr)
		}
	}
}

func TestRenderWidget_ComplexityColourClass(t *testing.T) {
	renderer := newRenderer(t)
	w, _ := widgets.NewRegistry().Resolve(widgets.FillComplexity)

	out, err := renderer.RenderWidget(testsupport.Context(), w, vanilla.NewView("difficulty", "", sampleValues[:1]))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	labels := findAll(parseFragment(t, out), "label")
	if len(labels) != 1 || attr(labels[0], "class") != "checkbox complexity-color-3" {
		t.Fatalf("unexpected label markup: %s", out)
	}
}

func TestRenderWidget_IconsUseThemeSprite(t *testing.T) {
	w, _ := widgets.NewRegistry().Resolve(widgets.FillCheckboxSpecific)

	plain := newRenderer(t)
	out, err := plain.RenderWidget(testsupport.Context(), w, vanilla.NewView("services", "", sampleValues[:1]))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	uses := findAll(parseFragment(t, out), "use")
	if len(uses) != 1 || attr(uses[0], "href") != "#ico-3" {
		t.Fatalf("unexpected icon reference: %s", out)
	}

	themed := newRenderer(t, vanilla.WithTheme(&theme.RendererConfig{
		Theme: "acme",
		AssetURL: func(key string) string {
			return "/assets/themes/acme/" + key + ".svg"
		},
	}))
	out, err = themed.RenderWidget(testsupport.Context(), w, vanilla.NewView("services", "", sampleValues[:1]))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	uses = findAll(parseFragment(t, out), "use")
	if len(uses) != 1 || attr(uses[0], "href") != "/assets/themes/acme/icons.svg#ico-3" {
		t.Fatalf("unexpected themed icon reference: %s", out)
	}
}

func TestRenderWidget_ThemePartialOverride(t *testing.T) {
	files := fstest.MapFS{
		"themes/acme/select.tmpl": {Data: []byte(`{% for item in items %}<option class="acme" value="{{ item.id }}">{{ item.label }}</option>{% endfor %}`)},
	}
	renderer := newRenderer(t,
		vanilla.WithTemplatesFS(files),
		vanilla.WithTheme(&theme.RendererConfig{
			Theme:    "acme",
			Partials: map[string]string{"attributes.select": "themes/acme/select.tmpl"},
		}),
	)
	w, _ := widgets.NewRegistry().Resolve(widgets.FillSelect)

	out, err := renderer.RenderWidget(testsupport.Context(), w, vanilla.NewView("country", "", sampleValues))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	options := findAll(parseFragment(t, out), "option")
	if len(options) != 3 || attr(options[0], "class") != "acme" {
		t.Fatalf("theme partial not used: %s", out)
	}
}

func TestRenderWidget_ThemeGlobalsReachPartials(t *testing.T) {
	files := fstest.MapFS{
		"themes/acme/select.tmpl": {Data: []byte(`{% for item in items %}<option value="{{ item.id }}">{{ theme.variant }}-{{ theme.tokens.brand }}</option>{% endfor %}`)},
	}
	renderer := newRenderer(t,
		vanilla.WithTemplatesFS(files),
		vanilla.WithTheme(&theme.RendererConfig{
			Theme:    "acme",
			Variant:  "dark",
			Tokens:   map[string]string{"brand": "teal"},
			Partials: map[string]string{"attributes.select": "themes/acme/select.tmpl"},
		}),
	)
	w, _ := widgets.NewRegistry().Resolve(widgets.FillSelect)

	out, err := renderer.RenderWidget(testsupport.Context(), w, vanilla.NewView("country", "", sampleValues[:1]))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	options := findAll(parseFragment(t, out), "option")
	if len(options) != 1 || text(options[0]) != "dark-teal" {
		t.Fatalf("theme globals not exposed: %s", out)
	}
}

func TestRenderWidget_SanitisesHostileValues(t *testing.T) {
	renderer := newRenderer(t)
	w, _ := widgets.NewRegistry().Resolve(widgets.FillCheckbox)

	values := []model.AttributeValue{{ID: `1" onclick="x`, Label: `<script>alert(1)</script><b>bold</b>`}}
	out, err := renderer.RenderWidget(testsupport.Context(), w, vanilla.NewView("x", "", values))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	root := parseFragment(t, out)
	if len(findAll(root, "script")) != 0 || len(findAll(root, "b")) != 0 {
		t.Fatalf("markup leaked through: %s", out)
	}
	inputs := findAll(root, "input")
	if len(inputs) != 1 || hasAttr(inputs[0], "onclick") {
		t.Fatalf("attribute injection not neutralised: %s", out)
	}
}

func TestRenderWidget_MissingTemplate(t *testing.T) {
	renderer := newRenderer(t)
	_, err := renderer.RenderWidget(testsupport.Context(), widgets.Widget{FillType: "rating", Partial: "custom.rating"}, vanilla.NewView("x", "", sampleValues))
	if err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func parseFragment(t *testing.T, markup string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return nodes
}

func findAll(nodes []*html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
