package attrschema_test

import (
	"context"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
)

type failingLoader struct {
	err error
}

func (l failingLoader) Load(context.Context, dataloader.Request) (dataloader.Response, error) {
	return dataloader.Response{}, l.err
}
