// Package dataloader defines the data-fetch collaborator used by the attribute
// schema and value loaders. A Request names a logical endpoint (controller +
// action) plus string parameters; a Response carries the raw payload and
// decodes it on demand. The HTTP implementation lives in internal/dataloader
// and is constructed through prodattr.NewLoader.
package dataloader
