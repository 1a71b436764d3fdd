package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrContainerNotFound is returned when an append-style widget has no list
// container inside its input element.
var ErrContainerNotFound = errors.New("page: list container not found")

// Document is a parsed HTML tree holding attribute inputs.
type Document struct {
	mu   sync.Mutex
	root *html.Node
	opts Options
	sel  selectors
}

// Parse reads an HTML document from r.
func Parse(r io.Reader, fns ...OptionFn) (*Document, error) {
	if r == nil {
		return nil, errors.New("page: missing reader")
	}
	opts := NewOptions(fns...)
	sel, err := compileSelectors(opts)
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	return &Document{root: root, opts: opts, sel: sel}, nil
}

// ParseString is Parse over a string.
func ParseString(markup string, fns ...OptionFn) (*Document, error) {
	return Parse(strings.NewReader(markup), fns...)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the document, returning the empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Pending returns the inputs that have not been claimed yet, in document
// order, without marking them.
func (d *Document) Pending() []*Input {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pendingLocked()
}

// Claim returns every unclaimed input and marks each one completed in the
// same critical section, so concurrent callers never receive the same input.
func (d *Document) Claim() []*Input {
	d.mu.Lock()
	defer d.mu.Unlock()
	inputs := d.pendingLocked()
	for _, input := range inputs {
		addClass(input.node, d.opts.CompletedClass)
	}
	return inputs
}

// Inputs returns every input, claimed or not, in document order.
func (d *Document) Inputs() []*Input {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(htmlquery.QuerySelectorAll(d.root, d.sel.inputs))
}

func (d *Document) pendingLocked() []*Input {
	return d.wrap(htmlquery.QuerySelectorAll(d.root, d.sel.pending))
}

func (d *Document) wrap(nodes []*html.Node) []*Input {
	out := make([]*Input, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Input{doc: d, node: n})
	}
	return out
}

// Input is an element carrying an attribute code and a fill type.
type Input struct {
	doc  *Document
	node *html.Node
}

// Code returns the attribute code.
func (in *Input) Code() string {
	in.doc.mu.Lock()
	defer in.doc.mu.Unlock()
	return strings.TrimSpace(getAttr(in.node, in.doc.opts.CodeAttr))
}

// FillType returns the declared widget kind.
func (in *Input) FillType() string {
	in.doc.mu.Lock()
	defer in.doc.mu.Unlock()
	return strings.TrimSpace(getAttr(in.node, in.doc.opts.FillTypeAttr))
}

// Completed reports whether the input carries the completed marker.
func (in *Input) Completed() bool {
	in.doc.mu.Lock()
	defer in.doc.mu.Unlock()
	return hasClass(in.node, in.doc.opts.CompletedClass)
}

// MarkCompleted adds the completed marker. It reports false when the marker
// was already present.
func (in *Input) MarkCompleted() bool {
	in.doc.mu.Lock()
	defer in.doc.mu.Unlock()
	if hasClass(in.node, in.doc.opts.CompletedClass) {
		return false
	}
	addClass(in.node, in.doc.opts.CompletedClass)
	return true
}

// ReplaceContent replaces the input's children with markup.
func (in *Input) ReplaceContent(markup string) error {
	in.doc.mu.Lock()
	defer in.doc.mu.Unlock()

	nodes, err := parseFragment(markup, in.node)
	if err != nil {
		return err
	}
	for c := in.node.FirstChild; c != nil; {
		next := c.NextSibling
		in.node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		in.node.AppendChild(n)
	}
	return nil
}

// AppendToList appends markup to the list container inside the input.
func (in *Input) AppendToList(markup string) error {
	in.doc.mu.Lock()
	defer in.doc.mu.Unlock()

	container := htmlquery.QuerySelector(in.node, in.doc.sel.container)
	if container == nil {
		return fmt.Errorf("%w: input %q", ErrContainerNotFound, getAttr(in.node, in.doc.opts.CodeAttr))
	}
	nodes, err := parseFragment(markup, container)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return nil
}

// InnerHTML renders the input's children.
func (in *Input) InnerHTML() string {
	in.doc.mu.Lock()
	defer in.doc.mu.Unlock()
	var buf bytes.Buffer
	for c := in.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

func parseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("page: parse fragment: %w", err)
	}
	return nodes, nil
}
