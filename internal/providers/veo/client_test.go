package veo

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"

	"photomotion/internal/domain"
)

type stubAPI struct {
	submitOp  *genai.GenerateVideosOperation
	submitErr error

	polls     []pollResult
	pollCalls int
	seen      []*genai.GenerateVideosOperation
}

type pollResult struct {
	op  *genai.GenerateVideosOperation
	err error
}

func (s *stubAPI) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return s.submitOp, s.submitErr
}

func (s *stubAPI) GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	s.seen = append(s.seen, operation)
	if s.pollCalls >= len(s.polls) {
		return nil, errors.New("unexpected poll")
	}
	res := s.polls[s.pollCalls]
	s.pollCalls++
	return res.op, res.err
}

func pendingOp(name string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{Name: name}
}

func doneOp(name, uri string) *genai.GenerateVideosOperation {
	op := &genai.GenerateVideosOperation{Name: name, Done: true}
	if uri != "" {
		op.Response = &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{
				{Video: &genai.Video{URI: uri}},
			},
		}
	}
	return op
}

func testClient(a *stubAPI) *Client {
	return newClient(a, Options{PollInterval: time.Millisecond})
}

func validRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Prompt:        "a cat running",
		ImageData:     base64.StdEncoding.EncodeToString([]byte("jpegbytes")),
		ImageMIMEType: "image/jpeg",
		Aspect:        domain.AspectLandscape,
	}
}

func TestRunToCompletionHappyPath(t *testing.T) {
	a := &stubAPI{
		submitOp: pendingOp("operations/abc"),
		polls: []pollResult{
			{op: pendingOp("operations/abc")},
			{op: pendingOp("operations/abc")},
			{op: doneOp("operations/abc", "https://video.example/asset?alt=media")},
		},
	}
	var messages []string
	location, err := testClient(a).RunToCompletion(context.Background(), validRequest(), func(m string) {
		messages = append(messages, m)
	})
	if err != nil {
		t.Fatalf("RunToCompletion error: %v", err)
	}
	if location != "https://video.example/asset?alt=media" {
		t.Fatalf("location = %q", location)
	}
	want := []string{progressMessages[0], progressMessages[1], progressMessages[2]}
	if len(messages) != len(want) {
		t.Fatalf("messages = %v, want %v", messages, want)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Fatalf("message[%d] = %q, want %q", i, messages[i], want[i])
		}
	}
	if a.pollCalls != 3 {
		t.Fatalf("pollCalls = %d, want 3 (done handles must never be polled again)", a.pollCalls)
	}
}

func TestRunToCompletionEchoesFullHandle(t *testing.T) {
	first := pendingOp("operations/abc")
	a := &stubAPI{
		submitOp: first,
		polls: []pollResult{
			{op: pendingOp("operations/abc")},
			{op: doneOp("operations/abc", "https://video.example/v")},
		},
	}
	if _, err := testClient(a).RunToCompletion(context.Background(), validRequest(), nil); err != nil {
		t.Fatalf("RunToCompletion error: %v", err)
	}
	if a.seen[0] != first {
		t.Fatal("first poll must echo the handle returned by submit")
	}
	if a.seen[1] == first {
		t.Fatal("second poll must echo the handle returned by the first poll, not the original")
	}
}

func TestRunToCompletionDoneWithoutResult(t *testing.T) {
	a := &stubAPI{
		submitOp: pendingOp("operations/abc"),
		polls:    []pollResult{{op: doneOp("operations/abc", "")}},
	}
	_, err := testClient(a).RunToCompletion(context.Background(), validRequest(), nil)
	if !errors.Is(err, domain.ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestRunToCompletionIgnoresLaterDescriptors(t *testing.T) {
	op := &genai.GenerateVideosOperation{
		Name: "operations/abc",
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{
				{Video: &genai.Video{}},
				{Video: &genai.Video{URI: "https://video.example/second"}},
			},
		},
	}
	a := &stubAPI{submitOp: pendingOp("operations/abc"), polls: []pollResult{{op: op}}}
	_, err := testClient(a).RunToCompletion(context.Background(), validRequest(), nil)
	if !errors.Is(err, domain.ErrNoResult) {
		t.Fatalf("a first descriptor without a location must not fall through to later ones, got %v", err)
	}
}

func TestRunToCompletionImmediatelyDone(t *testing.T) {
	a := &stubAPI{submitOp: doneOp("operations/abc", "https://video.example/v")}
	var messages []string
	location, err := testClient(a).RunToCompletion(context.Background(), validRequest(), func(m string) {
		messages = append(messages, m)
	})
	if err != nil {
		t.Fatalf("RunToCompletion error: %v", err)
	}
	if location == "" {
		t.Fatal("expected a location")
	}
	if a.pollCalls != 0 {
		t.Fatal("a handle observed done must not be polled")
	}
	if len(messages) != 0 {
		t.Fatalf("no progress expected without polling, got %v", messages)
	}
}

func TestRunToCompletionSubmitFailure(t *testing.T) {
	a := &stubAPI{submitErr: errors.New("API key not valid. Please pass a valid API key.")}
	_, err := testClient(a).RunToCompletion(context.Background(), validRequest(), nil)
	if !errors.Is(err, domain.ErrSubmission) {
		t.Fatalf("expected ErrSubmission, got %v", err)
	}
	if !domain.IsCredentialInvalid(err) {
		t.Fatal("remote error text must survive wrapping for credential classification")
	}
}

func TestRunToCompletionToleratesTransientPollFailures(t *testing.T) {
	a := &stubAPI{
		submitOp: pendingOp("operations/abc"),
		polls: []pollResult{
			{err: errors.New("transient network failure")},
			{op: doneOp("operations/abc", "https://video.example/v")},
		},
	}
	location, err := testClient(a).RunToCompletion(context.Background(), validRequest(), nil)
	if err != nil {
		t.Fatalf("a single poll failure must not end the job: %v", err)
	}
	if location == "" {
		t.Fatal("expected a location")
	}
}

func TestRunToCompletionSustainedPollFailure(t *testing.T) {
	a := &stubAPI{
		submitOp: pendingOp("operations/abc"),
		polls: []pollResult{
			{err: errors.New("network down")},
			{err: errors.New("network down")},
			{err: errors.New("network down")},
		},
	}
	_, err := testClient(a).RunToCompletion(context.Background(), validRequest(), nil)
	if !errors.Is(err, domain.ErrPoll) {
		t.Fatalf("expected ErrPoll after sustained failures, got %v", err)
	}
}

func TestRunToCompletionHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := &stubAPI{submitOp: pendingOp("operations/abc")}
	_, err := newClient(a, Options{PollInterval: time.Hour}).RunToCompletion(ctx, validRequest(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSubmitRejectsBadPayload(t *testing.T) {
	a := &stubAPI{submitOp: pendingOp("operations/abc")}
	req := validRequest()
	req.ImageData = "!!!not-base64!!!"
	if _, err := testClient(a).Submit(context.Background(), req); !errors.Is(err, domain.ErrSubmission) {
		t.Fatalf("expected ErrSubmission, got %v", err)
	}
}

func TestProgressMessageRotation(t *testing.T) {
	if len(progressMessages) != 10 {
		t.Fatalf("message list length = %d, want 10", len(progressMessages))
	}
	for n := 0; n < 25; n++ {
		if got := ProgressMessage(n); got != progressMessages[n%10] {
			t.Fatalf("ProgressMessage(%d) = %q, want index %d", n, got, n%10)
		}
	}
}
