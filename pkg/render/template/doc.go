// Package template defines renderer-agnostic template interfaces. The pongo2
// implementation lives in the gotemplate subpackage.
package template
