package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"photomotion/internal/assets"
	"photomotion/internal/credential"
	"photomotion/internal/providers/prompt"
	"photomotion/internal/sse"
	"photomotion/internal/workflow"
)

// CredentialSaver persists a user-provided API key. Nil when the service
// runs without a database.
type CredentialSaver interface {
	SetAPIKey(ctx context.Context, key string) error
}

// App bundles the collaborators the HTTP handlers need.
type App struct {
	Logger  zerolog.Logger
	Machine *workflow.Machine
	Assets  *assets.Store
	Gate    *credential.Gate
	Creds   CredentialSaver
	Ideas   prompt.Ideas
	Hub     *sse.Hub
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}
