package domain

import "fmt"

// AspectRatio enumerates the supported output orientations.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "landscape"
	AspectPortrait  AspectRatio = "portrait"
)

// Generation parameters fixed by the product: one video per request at 720p.
const (
	VideoCount = 1
	Resolution = "720p"
)

// ParseAspectRatio normalizes a user-supplied aspect ratio. An empty value
// defaults to landscape.
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch AspectRatio(s) {
	case "":
		return AspectLandscape, nil
	case AspectLandscape, AspectPortrait:
		return AspectRatio(s), nil
	default:
		return "", fmt.Errorf("unsupported aspect ratio %q", s)
	}
}

// Veo returns the aspect ratio in the vocabulary the Veo API expects.
func (a AspectRatio) Veo() string {
	if a == AspectPortrait {
		return "9:16"
	}
	return "16:9"
}

// GenerationRequest carries everything needed to start one video generation
// job. It is immutable once submitted.
type GenerationRequest struct {
	Prompt        string
	ImageData     string // base64 payload, no data-URI envelope
	ImageMIMEType string
	Aspect        AspectRatio
}
