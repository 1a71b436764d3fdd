package dataloader

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Controller and actions of the products backend.
const (
	DefaultController     = "products.d"
	ActionAttributeSchema = "getAttributesSchema"
	ActionAttributeValues = "getAttributeValues"
)

// Parameter names understood by the products backend.
const (
	ParamController = "controller"
	ParamAction     = "action"
	ParamType       = "type"
	ParamCode       = "code"
)

// Request identifies a backend endpoint and its parameters.
type Request struct {
	Controller string
	Action     string
	Params     map[string]string
}

// NewRequest constructs a Request with a copy of params.
func NewRequest(controller, action string, params map[string]string) Request {
	req := Request{
		Controller: strings.TrimSpace(controller),
		Action:     strings.TrimSpace(action),
	}
	if len(params) > 0 {
		req.Params = make(map[string]string, len(params))
		for key, value := range params {
			req.Params[key] = value
		}
	}
	return req
}

// Param returns the named parameter or the empty string.
func (r Request) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// Validate reports whether the request names an endpoint.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Action) == "" {
		return errors.New("dataloader: request action is required")
	}
	return nil
}

// Query encodes the request as URL query values. Controller and action are
// always emitted first; the remaining params follow in lexical order so the
// encoding is stable.
func (r Request) Query() url.Values {
	values := url.Values{}
	if r.Controller != "" {
		values.Set(ParamController, r.Controller)
	}
	if r.Action != "" {
		values.Set(ParamAction, r.Action)
	}
	keys := make([]string, 0, len(r.Params))
	for key := range r.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key == ParamController || key == ParamAction {
			continue
		}
		values.Set(key, r.Params[key])
	}
	return values
}

// String describes the request for logs and error messages.
func (r Request) String() string {
	return r.Controller + "/" + r.Action + "?" + r.Query().Encode()
}

// Response wraps a raw payload returned by a Loader.
type Response struct {
	raw []byte
}

// NewResponse copies raw into a Response.
func NewResponse(raw []byte) Response {
	return Response{raw: append([]byte(nil), raw...)}
}

// JSONResponse marshals v into a Response. Handy for in-memory loaders.
func JSONResponse(v any) (Response, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Response{}, fmt.Errorf("dataloader: encode response: %w", err)
	}
	return Response{raw: raw}, nil
}

// Raw returns a copy of the payload.
func (r Response) Raw() []byte {
	return append([]byte(nil), r.raw...)
}

// Decode unmarshals the JSON payload into v.
func (r Response) Decode(v any) error {
	if len(r.raw) == 0 {
		return errors.New("dataloader: empty response")
	}
	if err := json.Unmarshal(r.raw, v); err != nil {
		return fmt.Errorf("dataloader: decode response: %w", err)
	}
	return nil
}
