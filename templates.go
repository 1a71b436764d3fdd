package prodattr

import (
	"io/fs"

	"github.com/goliatone/go-prodattr/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in widget templates so themes can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
