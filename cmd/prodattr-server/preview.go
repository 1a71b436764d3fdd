package main

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	prodattr "github.com/goliatone/go-prodattr"
	"github.com/goliatone/go-prodattr/pkg/page"
)

const maxPreviewBytes = 1 << 20

func mountPreview(basePath string) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return basePath + "/preview"
}

// previewHandler fills the attribute inputs of the posted HTML page for the
// product type in ?type= and returns the rendered page.
func previewHandler(mod *prodattr.Module, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		typeID := strings.TrimSpace(r.URL.Query().Get("type"))
		if typeID == "" {
			http.Error(w, "missing type", http.StatusBadRequest)
			return
		}

		doc, err := page.Parse(io.LimitReader(r.Body, maxPreviewBytes))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		batch, err := mod.RenderInputs(r.Context(), doc, typeID, nil)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if err := batch.Wait(r.Context()); err != nil {
			logger.Warn("preview incomplete",
				zap.String("batch", batch.ID()),
				zap.String("type", typeID),
				zap.Error(err))
			w.Header().Set("X-Prodattr-Incomplete", "true")
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := doc.Render(w); err != nil {
			logger.Warn("preview render failed", zap.Error(err))
		}
	})
}
