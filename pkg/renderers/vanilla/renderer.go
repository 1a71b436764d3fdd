package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	rendertemplate "github.com/goliatone/go-prodattr/pkg/render/template"
	gotemplate "github.com/goliatone/go-prodattr/pkg/render/template/gotemplate"
	"github.com/goliatone/go-prodattr/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	policy           *bluemonday.Policy
	sanitize         bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a go-theme renderer config. Partials keyed by
// "attributes.<fill type>" replace the built-in templates and the "icons"
// asset is exposed to templates as icon_sprite. A renderer injected with
// WithTemplateRenderer owns its own globals.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithPolicy replaces the sanitising policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithoutSanitizer disables sanitising. Only use with trusted templates and
// trusted backend values.
func WithoutSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitize = false
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	policy    *bluemonday.Policy
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		policy:     WidgetPolicy(),
		sanitize:   true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGlobals(themeGlobals(cfg.theme)),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{templates: renderer, theme: cfg.theme}
	if cfg.sanitize {
		r.policy = cfg.policy
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderWidget renders view with the template bound to w and returns the
// sanitised fragment.
func (r *Renderer) RenderWidget(ctx context.Context, w widgets.Widget, view View) (string, error) {
	if r == nil || r.templates == nil {
		return "", errors.New("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if view.FillType == "" {
		view.FillType = string(w.FillType)
	}

	path := r.templatePath(w)
	result, err := r.templates.RenderTemplate(path, view)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s: %w", w.FillType, err)
	}
	return sanitizeMarkup(r.policy, result), nil
}

func (r *Renderer) templatePath(w widgets.Widget) string {
	partial := strings.TrimSpace(w.Partial)
	if partial == "" {
		partial = widgets.PartialName(w.FillType)
	}
	if r.theme != nil {
		if override := strings.TrimSpace(r.theme.Partials[partial]); override != "" {
			return override
		}
	}
	if rest, ok := strings.CutPrefix(partial, "attributes."); ok {
		return "templates/attributes/" + rest
	}
	return "templates/" + strings.ReplaceAll(partial, ".", "/")
}

// themeGlobals is the template-wide data derived from the theme.
func themeGlobals(cfg *theme.RendererConfig) map[string]any {
	globals := map[string]any{"icon_sprite": ""}
	if cfg == nil {
		return globals
	}
	if cfg.AssetURL != nil {
		globals["icon_sprite"] = strings.TrimSpace(cfg.AssetURL(IconSpriteAsset))
	}
	globals["theme"] = map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"tokens":  cfg.Tokens,
	}
	return globals
}
