package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-prodattr/pkg/model"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Defaults are applied again, so a zero Options is usable.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		payload, err := dispatch(r, opts)
		if err != nil {
			code := statusFor(err, http.StatusInternalServerError)
			if code >= http.StatusInternalServerError {
				opts.Logger.Warn("catalog request failed",
					zap.String("query", r.URL.RawQuery),
					zap.Error(err))
			}
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(payload)
	})
}

func dispatch(r *http.Request, opts Options) (any, error) {
	query := r.URL.Query()
	return answer(r.Context(), opts,
		query.Get(opts.ControllerParam),
		query.Get(opts.ActionParam),
		query.Get(opts.TypeParam),
		query.Get(opts.CodeParam),
	)
}

// answer resolves one products.d query against the store. It is shared by the
// HTTP handler and the in-process loader.
func answer(ctx context.Context, opts Options, controller, action, typeID, code string) (any, error) {
	controller = strings.TrimSpace(controller)
	if controller != "" && controller != opts.Controller {
		return nil, StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("catalog: unknown controller %q", controller)}
	}
	action = strings.TrimSpace(action)
	typeID = strings.TrimSpace(typeID)
	code = strings.TrimSpace(code)

	switch action {
	case ActionSchema:
		if typeID == "" {
			return nil, missingParam(opts.TypeParam)
		}
		schema, err := opts.Store.Schema(ctx, typeID)
		if err != nil {
			return nil, err
		}
		if schema == nil {
			schema = model.Schema{}
		}
		return model.SchemaPayload{Schema: schema}, nil
	case ActionValues:
		if typeID == "" {
			return nil, missingParam(opts.TypeParam)
		}
		if code == "" {
			return nil, missingParam(opts.CodeParam)
		}
		items, err := opts.Store.Values(ctx, typeID, code)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []model.AttributeValue{}
		}
		return model.ValueList{Items: items}, nil
	default:
		return nil, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("catalog: unknown action %q", action)}
	}
}

func missingParam(name string) error {
	return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("catalog: missing %q parameter", name)}
}

func statusFor(err error, fallback int) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	if errors.Is(err, ErrTypeNotFound) {
		return http.StatusNotFound
	}
	return fallback
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	if err != nil {
		code = statusFor(err, fallback)
	}
	http.Error(w, http.StatusText(code), code)
}
