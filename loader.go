package prodattr

import (
	internaldataloader "github.com/goliatone/go-prodattr/internal/dataloader"
	"github.com/goliatone/go-prodattr/pkg/dataloader"
)

// NewLoader constructs the HTTP loader while keeping the concrete type hidden
// from consumers.
func NewLoader(options ...dataloader.LoaderOption) dataloader.Loader {
	cfg := dataloader.NewLoaderOptions(options...)
	return internaldataloader.New(cfg)
}
