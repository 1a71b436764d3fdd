package catalog

import (
	"context"
	"fmt"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
)

// Loader returns a dataloader.Loader answering requests from the component's
// store without going through HTTP.
func (c *Component) Loader() dataloader.Loader {
	opts := c.Options()
	return dataloader.LoaderFunc(func(ctx context.Context, req dataloader.Request) (dataloader.Response, error) {
		if err := req.Validate(); err != nil {
			return dataloader.Response{}, err
		}
		controller := req.Controller
		if controller == "" {
			controller = opts.Controller
		}
		payload, err := answer(ctx, opts,
			controller,
			req.Action,
			req.Param(dataloader.ParamType),
			req.Param(dataloader.ParamCode),
		)
		if err != nil {
			return dataloader.Response{}, fmt.Errorf("catalog: %s: %w", req, err)
		}
		return dataloader.JSONResponse(payload)
	})
}
