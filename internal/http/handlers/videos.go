package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"photomotion/internal/domain"
	"photomotion/internal/media"
	"photomotion/internal/workflow"
)

const maxUploadBytes = 32 << 20

type generateBody struct {
	Image       string `json:"image"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

// CreateVideo accepts a photo plus optional prompt and aspect ratio, starts a
// generation job and returns 202 immediately. The job itself runs on its own
// goroutine; clients follow it via the session snapshot or the event stream.
func (a *App) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var (
		image  *media.EncodedImage
		prompt string
		aspect string
		err    error
	)

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			a.error(w, http.StatusUnprocessableEntity, "invalid_image", "could not read the upload")
			return
		}
		file, _, ferr := r.FormFile("image")
		if ferr != nil {
			a.error(w, http.StatusUnprocessableEntity, "invalid_image", "an image file is required")
			return
		}
		defer file.Close()
		image, err = media.Encode(file)
		prompt = r.FormValue("prompt")
		aspect = r.FormValue("aspect_ratio")
	default:
		var body generateBody
		if derr := json.NewDecoder(r.Body).Decode(&body); derr != nil {
			a.error(w, http.StatusUnprocessableEntity, "invalid_body", "invalid request body")
			return
		}
		image, err = media.ParseDataURI(body.Image)
		prompt = body.Prompt
		aspect = body.AspectRatio
	}
	if err != nil {
		a.error(w, http.StatusUnprocessableEntity, "invalid_image", domain.UserMessage(err))
		return
	}

	ratio, err := domain.ParseAspectRatio(aspect)
	if err != nil {
		a.error(w, http.StatusUnprocessableEntity, "invalid_aspect_ratio", err.Error())
		return
	}

	in := workflow.Input{Image: image, Prompt: strings.TrimSpace(prompt), Aspect: ratio}
	if err := a.Machine.Begin(in); err != nil {
		switch {
		case errors.Is(err, workflow.ErrBusy), errors.Is(err, workflow.ErrNotIdle):
			a.error(w, http.StatusConflict, "session_busy", err.Error())
		case errors.Is(err, workflow.ErrCredentialInactive):
			a.error(w, http.StatusUnprocessableEntity, "credential_required", err.Error())
		case errors.Is(err, workflow.ErrNoImage):
			a.error(w, http.StatusUnprocessableEntity, "invalid_image", err.Error())
		default:
			a.error(w, http.StatusInternalServerError, "internal", "could not start generation")
		}
		return
	}

	go func() {
		if err := a.Machine.Run(context.Background()); err != nil {
			a.Logger.Error().Err(err).Msg("handlers: generation job ended with error")
		}
	}()

	a.json(w, http.StatusAccepted, map[string]string{"state": string(a.Machine.State())})
}
