package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure kinds surfaced to the user. Components wrap
// these with fmt.Errorf("...: %w", ...) so the remote error text survives for
// classification.
var (
	// ErrRead means the local image could not be read; the user must
	// reselect the file.
	ErrRead = errors.New("image read failed")
	// ErrSubmission means the remote service rejected the generation
	// request, including invalid or expired credentials.
	ErrSubmission = errors.New("generation request rejected")
	// ErrPoll means a status check failed in transit.
	ErrPoll = errors.New("generation status check failed")
	// ErrNoResult means the job completed without producing a retrievable
	// video. Permanent for that job.
	ErrNoResult = errors.New("generation finished without a video")
	// ErrDownload means the finished video could not be retrieved.
	ErrDownload = errors.New("video download failed")
)

// credentialSignatures are substrings the upstream API puts in authorization
// failures. A match forces the credential gate closed.
var credentialSignatures = []string{
	"requested entity was not found",
	"api key not valid",
	"api_key_invalid",
	"permission denied",
	"permission_denied",
	"unauthenticated",
}

// IsCredentialInvalid reports whether the error text carries an
// authorization-failure signature.
func IsCredentialInvalid(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range credentialSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// UserMessage renders a failure as the single message shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsCredentialInvalid(err):
		return "Your API key is no longer valid. Please select a key to continue."
	case errors.Is(err, ErrRead):
		return "The selected image could not be read. Please choose it again."
	case errors.Is(err, ErrNoResult):
		return "The model finished but returned no video. Try a different photo or prompt."
	case errors.Is(err, ErrDownload):
		return "The video was generated but could not be downloaded. Please try again."
	case errors.Is(err, ErrPoll):
		return "Lost contact with the generation job. Please try again."
	case errors.Is(err, ErrSubmission):
		return "The generation request was rejected. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
