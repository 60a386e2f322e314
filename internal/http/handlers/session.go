package handlers

import "net/http"

type sessionResponse struct {
	State        string `json:"state"`
	PollCount    int    `json:"poll_count"`
	LastProgress string `json:"last_progress,omitempty"`
	AssetRef     string `json:"asset_ref,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Session returns the current workflow snapshot.
func (a *App) Session(w http.ResponseWriter, r *http.Request) {
	snap := a.Machine.Snapshot()
	a.json(w, http.StatusOK, sessionResponse{
		State:        string(snap.State),
		PollCount:    snap.PollCount,
		LastProgress: snap.LastProgress,
		AssetRef:     snap.AssetRef,
		ErrorMessage: snap.ErrorMessage,
	})
}

// ResetSession clears the finished or failed job. The superseded asset, if
// any, is released once the machine has let go of its ref.
func (a *App) ResetSession(w http.ResponseWriter, r *http.Request) {
	prevRef := a.Machine.Snapshot().AssetRef
	a.Gate.Sync(r.Context())
	if err := a.Machine.Reset(); err != nil {
		a.error(w, http.StatusConflict, "session_busy", err.Error())
		return
	}
	if prevRef != "" {
		a.Assets.Release(prevRef)
	}
	a.json(w, http.StatusOK, map[string]string{"state": string(a.Machine.State())})
}
