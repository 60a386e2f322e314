package handlers

import (
	"net/http"

	"photomotion/internal/middleware"
)

// IdeasList returns prompt suggestions for the current locale.
func (a *App) IdeasList(w http.ResponseWriter, r *http.Request) {
	ideas, err := a.Ideas.Suggest(r.Context(), middleware.LocaleFromContext(r.Context()))
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "could not load suggestions")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"ideas": ideas})
}
