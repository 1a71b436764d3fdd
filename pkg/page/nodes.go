package page

import (
	"fmt"
	"strings"

	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// selectors holds the XPath expressions compiled from Options.
type selectors struct {
	inputs    *xpath.Expr
	pending   *xpath.Expr
	container *xpath.Expr
}

func compileSelectors(opts Options) (selectors, error) {
	var (
		sel selectors
		err error
	)
	input := classPredicate(opts.InputClass)
	if sel.inputs, err = xpath.Compile("//*[" + input + "]"); err != nil {
		return selectors{}, fmt.Errorf("page: compile input selector: %w", err)
	}
	if sel.pending, err = xpath.Compile("//*[" + input + " and not(" + classPredicate(opts.CompletedClass) + ")]"); err != nil {
		return selectors{}, fmt.Errorf("page: compile pending selector: %w", err)
	}
	if sel.container, err = xpath.Compile(".//*[" + classPredicate(opts.ContainerClass) + "]"); err != nil {
		return selectors{}, fmt.Errorf("page: compile container selector: %w", err)
	}
	return sel, nil
}

// classPredicate matches elements whose class list contains the token class.
func classPredicate(class string) string {
	return "contains(concat(' ', normalize-space(@class), ' '), ' " + class + " ')"
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode || class == "" {
		return false
	}
	for _, token := range strings.Fields(getAttr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			n.Attr[i].Val = strings.TrimSpace(a.Val + " " + class)
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
