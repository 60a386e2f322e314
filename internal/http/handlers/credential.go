package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type credentialBody struct {
	APIKey string `json:"api_key"`
}

// CredentialStatus reports whether the gate believes a usable key is active.
func (a *App) CredentialStatus(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]bool{"active": a.Gate.IsActive()})
}

// SetCredential stores the user-provided API key, opens the gate
// optimistically and unblocks the workflow. Validity is only confirmed by the
// next generation request.
func (a *App) SetCredential(w http.ResponseWriter, r *http.Request) {
	var body credentialBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.error(w, http.StatusUnprocessableEntity, "invalid_body", "invalid request body")
		return
	}
	key := strings.TrimSpace(body.APIKey)
	if key == "" {
		a.error(w, http.StatusUnprocessableEntity, "invalid_api_key", "api_key is required")
		return
	}

	if a.Creds != nil {
		if err := a.Creds.SetAPIKey(r.Context(), key); err != nil {
			a.Logger.Error().Err(err).Msg("handlers: persist api key")
			a.error(w, http.StatusInternalServerError, "internal", "could not store the API key")
			return
		}
	}
	if err := a.Gate.RequestAcquisition(r.Context()); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "could not activate the API key")
		return
	}
	a.Machine.CredentialAcquired()
	w.WriteHeader(http.StatusNoContent)
}
