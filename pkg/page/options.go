package page

import "strings"

// Default markers used by the admin templates.
const (
	DefaultInputClass     = "js__fill-attribute-values"
	DefaultCompletedClass = "js__fill-attribute-completed"
	DefaultContainerClass = "js__attributes-list-container"
	DefaultCodeAttr       = "data-code"
	DefaultFillTypeAttr   = "data-fill-type"
)

// Options configures how inputs are discovered.
type Options struct {
	InputClass     string
	CompletedClass string
	ContainerClass string
	CodeAttr       string
	FillTypeAttr   string
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the markers used by the admin templates.
func DefaultOptions() Options {
	return Options{
		InputClass:     DefaultInputClass,
		CompletedClass: DefaultCompletedClass,
		ContainerClass: DefaultContainerClass,
		CodeAttr:       DefaultCodeAttr,
		FillTypeAttr:   DefaultFillTypeAttr,
	}
}

// NewOptions applies fns over the defaults. Blank values, and class names that
// are not a single token, fall back to them.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	opts.InputClass = fallbackClass(opts.InputClass, defaults.InputClass)
	opts.CompletedClass = fallbackClass(opts.CompletedClass, defaults.CompletedClass)
	opts.ContainerClass = fallbackClass(opts.ContainerClass, defaults.ContainerClass)
	opts.CodeAttr = fallback(opts.CodeAttr, defaults.CodeAttr)
	opts.FillTypeAttr = fallback(opts.FillTypeAttr, defaults.FillTypeAttr)
	return opts
}

func WithInputClass(name string) OptionFn {
	return func(o *Options) { o.InputClass = name }
}

func WithCompletedClass(name string) OptionFn {
	return func(o *Options) { o.CompletedClass = name }
}

func WithContainerClass(name string) OptionFn {
	return func(o *Options) { o.ContainerClass = name }
}

func WithCodeAttr(name string) OptionFn {
	return func(o *Options) { o.CodeAttr = name }
}

func WithFillTypeAttr(name string) OptionFn {
	return func(o *Options) { o.FillTypeAttr = name }
}

func fallback(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	return value
}

func fallbackClass(value, def string) string {
	value = fallback(value, def)
	if strings.ContainsAny(value, " \t\r\n'\"") {
		return def
	}
	return value
}
