package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Asset streams a downloaded video back to the client.
func (a *App) Asset(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	asset, ok := a.Assets.Get(ref)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "asset not found")
		return
	}
	w.Header().Set("Content-Type", asset.MIMEType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(asset.Data)
}
