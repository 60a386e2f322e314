package prompt

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Idea is a ready-made motion prompt the UI can offer next to the text
// field.
type Idea struct {
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

// Ideas supplies prompt suggestions for animating a photo.
type Ideas interface {
	Suggest(ctx context.Context, locale string) ([]Idea, error)
}

// StaticIdeas serves a fixed set of suggestions. Titles are normalized with
// locale-aware casing so hosts can display them as headings.
type StaticIdeas struct{}

func NewStaticIdeas() *StaticIdeas {
	return &StaticIdeas{}
}

var seedIdeas = []Idea{
	{Title: "gentle breeze", Prompt: "a soft breeze moves through the scene, leaves and hair swaying gently", AspectRatio: "landscape"},
	{Title: "cinematic push-in", Prompt: "slow cinematic camera push toward the subject, shallow depth of field", AspectRatio: "landscape"},
	{Title: "golden hour", Prompt: "warm golden-hour light drifting across the frame, long soft shadows", AspectRatio: "landscape"},
	{Title: "portrait comes alive", Prompt: "the subject blinks and smiles naturally, subtle head movement", AspectRatio: "portrait"},
	{Title: "rainy window", Prompt: "raindrops run down a window in the foreground while the scene stays still", AspectRatio: "portrait"},
}

func (s *StaticIdeas) Suggest(ctx context.Context, locale string) ([]Idea, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_ = locale // a single suggestion set ships today
	caser := cases.Title(language.Und)
	out := make([]Idea, len(seedIdeas))
	for i, idea := range seedIdeas {
		idea.Title = caser.String(strings.TrimSpace(idea.Title))
		out[i] = idea
	}
	return out, nil
}

var _ Ideas = (*StaticIdeas)(nil)
