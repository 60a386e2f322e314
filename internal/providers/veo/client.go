package veo

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"photomotion/internal/domain"
)

const (
	// DefaultModel is the image-to-video model used when none is configured.
	DefaultModel = "veo-2.0-generate-001"
	// DefaultPollInterval is the fixed delay between status checks.
	DefaultPollInterval = 10 * time.Second

	// A single failed poll gets another chance at the next scheduled check;
	// this many consecutive failures count as sustained and end the job.
	maxConsecutivePollFailures = 3
)

// api is the slice of the genai SDK the client depends on, narrow enough to
// stub in tests.
type api interface {
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

type sdkAPI struct {
	client *genai.Client
}

func (s sdkAPI) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return s.client.Models.GenerateVideos(ctx, model, prompt, image, config)
}

func (s sdkAPI) GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return s.client.Operations.GetVideosOperation(ctx, operation, nil)
}

// Options configures the generation client.
type Options struct {
	APIKey       string
	Model        string
	BaseURL      string
	PollInterval time.Duration
	HTTPClient   *http.Client
	Logger       *zerolog.Logger
}

// Client submits video generation requests and drives the resulting
// long-running operation to completion. A client is built per job with the
// credential snapshot taken when the job started.
type Client struct {
	api      api
	model    string
	interval time.Duration
	logger   zerolog.Logger
}

// NewClient constructs a generation client bound to the given API key.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: api key is required", domain.ErrSubmission)
	}
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.HTTPClient != nil {
		cc.HTTPClient = opts.HTTPClient
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions.BaseURL = opts.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSubmission, err)
	}
	return newClient(sdkAPI{client: client}, opts), nil
}

func newClient(a api, opts Options) *Client {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{api: a, model: model, interval: interval, logger: logger}
}

// Submit performs one generation call and returns the remote operation
// handle.
func (c *Client) Submit(ctx context.Context, req domain.GenerationRequest) (*genai.GenerateVideosOperation, error) {
	raw, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image payload: %v", domain.ErrSubmission, err)
	}
	image := &genai.Image{
		ImageBytes: raw,
		MIMEType:   req.ImageMIMEType,
	}
	config := &genai.GenerateVideosConfig{
		NumberOfVideos: domain.VideoCount,
		AspectRatio:    req.Aspect.Veo(),
		Resolution:     domain.Resolution,
	}
	op, err := c.api.GenerateVideos(ctx, c.model, req.Prompt, image, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSubmission, err)
	}
	c.logger.Info().Str("model", c.model).Str("operation", op.Name).Msg("veo: generation submitted")
	return op, nil
}

// Poll performs one status check. The full prior handle is echoed to the
// remote service; the returned handle replaces it and the input is never
// mutated.
func (c *Client) Poll(ctx context.Context, operation *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	next, err := c.api.GetVideosOperation(ctx, operation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPoll, err)
	}
	return next, nil
}

// RunToCompletion submits the request and polls at a fixed interval until the
// operation reports done, emitting a progress message before each wait. It
// returns the retrievable location of the generated video.
func (c *Client) RunToCompletion(ctx context.Context, req domain.GenerationRequest, onProgress func(string)) (string, error) {
	operation, err := c.Submit(ctx, req)
	if err != nil {
		return "", err
	}

	pollCount := 0
	failures := 0
	for !operation.Done {
		if onProgress != nil {
			onProgress(ProgressMessage(pollCount))
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.interval):
		}
		next, err := c.Poll(ctx, operation)
		pollCount++
		if err != nil {
			failures++
			if failures >= maxConsecutivePollFailures {
				return "", err
			}
			c.logger.Warn().Err(err).Int("poll_count", pollCount).Msg("veo: poll failed, waiting for next cycle")
			continue
		}
		failures = 0
		operation = next
	}

	location := resultLocation(operation)
	if location == "" {
		return "", fmt.Errorf("%w: operation %s", domain.ErrNoResult, operation.Name)
	}
	c.logger.Info().Int("poll_count", pollCount).Str("operation", operation.Name).Msg("veo: generation complete")
	return location, nil
}

// resultLocation extracts the first generated video's retrievable URI, or ""
// when the operation finished without one. Only the first descriptor counts;
// the request asks for a single video and later entries are not consulted.
func resultLocation(operation *genai.GenerateVideosOperation) string {
	if operation == nil || operation.Response == nil || len(operation.Response.GeneratedVideos) == 0 {
		return ""
	}
	first := operation.Response.GeneratedVideos[0]
	if first == nil || first.Video == nil {
		return ""
	}
	return first.Video.URI
}
