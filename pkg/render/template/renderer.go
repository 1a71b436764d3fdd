package template

import (
	"io"
)

// TemplateRenderer is the seam widget renderers rely on.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
