package catalog

import (
	"context"
	"errors"

	"github.com/goliatone/go-prodattr/pkg/model"
)

// ErrTypeNotFound is returned by stores for unknown product types.
var ErrTypeNotFound = errors.New("catalog: product type not found")

// Store supplies attribute schemas and value lists per product type.
// Values returns an empty list for codes the type does not define.
type Store interface {
	Schema(ctx context.Context, typeID string) (model.Schema, error)
	Values(ctx context.Context, typeID, code string) ([]model.AttributeValue, error)
}
