package catalog

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
)

// Actions understood by the handler.
const (
	ActionSchema = dataloader.ActionAttributeSchema
	ActionValues = dataloader.ActionAttributeValues
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath       string
	Controller      string
	ControllerParam string
	ActionParam     string
	TypeParam       string
	CodeParam       string
	Guard           GuardFunc

	Store  Store
	Logger *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/products",
		Controller:      dataloader.DefaultController,
		ControllerParam: "controller",
		ActionParam:     "action",
		TypeParam:       "type",
		CodeParam:       "code",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.RoutePath == "" {
		opts.RoutePath = defaults.RoutePath
	}
	if opts.Controller == "" {
		opts.Controller = defaults.Controller
	}
	if opts.ControllerParam == "" {
		opts.ControllerParam = defaults.ControllerParam
	}
	if opts.ActionParam == "" {
		opts.ActionParam = defaults.ActionParam
	}
	if opts.TypeParam == "" {
		opts.TypeParam = defaults.TypeParam
	}
	if opts.CodeParam == "" {
		opts.CodeParam = defaults.CodeParam
	}
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithController(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Controller = name
	}
}

func WithControllerParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ControllerParam = name
	}
}

func WithActionParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ActionParam = name
	}
}

func WithTypeParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TypeParam = name
	}
}

func WithCodeParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CodeParam = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithStore(store Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
