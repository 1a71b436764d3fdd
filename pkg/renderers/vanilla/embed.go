package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/attributes/*.tmpl
var embeddedTemplates embed.FS

// IconSpriteAsset is the theme asset key resolved for checkbox-specific icons.
const IconSpriteAsset = "icons"

// TemplatesFS exposes the embedded widget templates for consumers that want
// to extend or override them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
