package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"photomotion/internal/assets"
	"photomotion/internal/domain"
	"photomotion/internal/media"
)

// Validation errors returned by Begin without a state change.
var (
	ErrNoImage            = errors.New("an image is required before generating")
	ErrCredentialInactive = errors.New("an active API key is required before generating")
	ErrBusy               = errors.New("a generation job is already running")
	ErrNotIdle            = errors.New("reset the current session before generating again")
	ErrNotStarted         = errors.New("no job has been started")
)

// Generator drives one remote generation job to completion.
type Generator interface {
	RunToCompletion(ctx context.Context, req domain.GenerationRequest, onProgress func(string)) (string, error)
}

// GeneratorFactory builds a Generator bound to the credential snapshot taken
// when the job started.
type GeneratorFactory func(ctx context.Context, apiKey string) (Generator, error)

// Fetcher downloads a finished asset from its resolved location.
type Fetcher interface {
	Fetch(ctx context.Context, location, apiKey string) (*assets.Asset, error)
}

// Gate is the credential gate consulted before and during a job.
type Gate interface {
	IsActive() bool
	Credential() string
	Invalidate()
}

// AssetSink registers a downloaded asset and returns its session ref.
type AssetSink interface {
	Put(*assets.Asset) string
}

// Observer receives user-facing workflow events. Callbacks run on the
// workflow goroutine and must not block or call back into the machine.
type Observer interface {
	StateChanged(from, to domain.WorkflowState)
	Progress(message string, pollCount int)
}

// Input is one submission attempt: the selected image, the optional prompt
// and the chosen aspect ratio.
type Input struct {
	Image  *media.EncodedImage
	Prompt string
	Aspect domain.AspectRatio
}

// Snapshot is the externally visible session state.
type Snapshot struct {
	State        domain.WorkflowState
	PollCount    int
	LastProgress string
	AssetRef     string
	ErrorMessage string
}

// Config wires a Machine.
type Config struct {
	Gate         Gate
	NewGenerator GeneratorFactory
	Fetcher      Fetcher
	Assets       AssetSink
	Observer     Observer
	Logger       zerolog.Logger
}

// Machine owns the end-to-end session state for one user: idle, submitting,
// polling, downloading, ready or failed, plus the credential precondition.
// At most one job runs at a time.
type Machine struct {
	mu sync.Mutex

	state     domain.WorkflowState
	input     Input
	jobKey    string
	pollCount int
	progress  string
	assetRef  string
	errMsg    string

	gate         Gate
	newGenerator GeneratorFactory
	fetcher      Fetcher
	assets       AssetSink
	observer     Observer
	logger       zerolog.Logger
}

// NewMachine builds a machine in Idle or AwaitingCredential depending on the
// gate.
func NewMachine(cfg Config) *Machine {
	state := domain.StateAwaitingCredential
	if cfg.Gate != nil && cfg.Gate.IsActive() {
		state = domain.StateIdle
	}
	return &Machine{
		state:        state,
		gate:         cfg.Gate,
		newGenerator: cfg.NewGenerator,
		fetcher:      cfg.Fetcher,
		assets:       cfg.Assets,
		observer:     cfg.Observer,
		logger:       cfg.Logger,
	}
}

// Snapshot returns the current session state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:        m.state,
		PollCount:    m.pollCount,
		LastProgress: m.progress,
		AssetRef:     m.assetRef,
		ErrorMessage: m.errMsg,
	}
}

// State returns the active workflow state.
func (m *Machine) State() domain.WorkflowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Begin validates the Idle preconditions, records the inputs, snapshots the
// credential and transitions to Submitting. Validation failures leave the
// state untouched.
func (m *Machine) Begin(in Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.state.Busy():
		return ErrBusy
	case m.state == domain.StateAwaitingCredential:
		return ErrCredentialInactive
	case m.state != domain.StateIdle:
		return ErrNotIdle
	case in.Image == nil || in.Image.Data == "":
		return ErrNoImage
	case m.gate == nil || !m.gate.IsActive():
		return ErrCredentialInactive
	}

	m.input = in
	m.jobKey = m.gate.Credential()
	m.pollCount = 0
	m.progress = ""
	m.errMsg = ""
	m.setStateLocked(domain.StateSubmitting)
	return nil
}

// Run drives a begun job to Ready or Failed and returns the failure, if any.
// It must follow a successful Begin; hosts that want a non-blocking submit
// call Run on its own goroutine.
func (m *Machine) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.state != domain.StateSubmitting {
		m.mu.Unlock()
		return ErrNotStarted
	}
	in := m.input
	key := m.jobKey
	m.mu.Unlock()

	req := domain.GenerationRequest{
		Prompt:        in.Prompt,
		ImageData:     in.Image.Data,
		ImageMIMEType: in.Image.MIMEType,
		Aspect:        in.Aspect,
	}

	generator, err := m.newGenerator(ctx, key)
	if err != nil {
		return m.fail(fmt.Errorf("%w: %v", domain.ErrSubmission, err))
	}

	location, err := generator.RunToCompletion(ctx, req, m.forwardProgress)
	if err != nil {
		return m.fail(err)
	}

	// An operation that is done at submission never enters the poll loop, so
	// walk the remaining forward states explicitly.
	m.transition(domain.StateSubmitting, domain.StatePolling)
	m.transition(domain.StatePolling, domain.StateDownloading)

	asset, err := m.fetcher.Fetch(ctx, location, key)
	if err != nil {
		return m.fail(err)
	}

	ref := m.assets.Put(asset)
	m.mu.Lock()
	m.assetRef = ref
	m.setStateLocked(domain.StateReady)
	m.mu.Unlock()
	m.logger.Info().Str("asset_ref", ref).Msg("workflow: video ready")
	return nil
}

// Reset clears the finished or failed job and returns to Idle, re-consulting
// the gate the way the host probe is consulted on startup. Resetting while a
// job is in flight is rejected.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Busy() {
		return ErrBusy
	}
	m.input = Input{}
	m.jobKey = ""
	m.pollCount = 0
	m.progress = ""
	m.errMsg = ""
	m.assetRef = ""
	next := domain.StateIdle
	if m.gate == nil || !m.gate.IsActive() {
		next = domain.StateAwaitingCredential
	}
	m.setStateLocked(next)
	return nil
}

// CredentialAcquired moves AwaitingCredential to Idle after the user
// completes the acquisition flow.
func (m *Machine) CredentialAcquired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == domain.StateAwaitingCredential {
		m.setStateLocked(domain.StateIdle)
	}
}

// forwardProgress relays generation progress to the observer. The first
// message arrives immediately after a successful submission, which is the
// submit-succeeded signal.
func (m *Machine) forwardProgress(message string) {
	m.mu.Lock()
	if m.state == domain.StateSubmitting {
		m.setStateLocked(domain.StatePolling)
	}
	n := m.pollCount
	m.pollCount++
	m.progress = message
	observer := m.observer
	m.mu.Unlock()
	if observer != nil {
		observer.Progress(message, n)
	}
}

// fail classifies the error, closes the gate on credential-invalid
// signatures and records the single user-visible message.
func (m *Machine) fail(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = domain.UserMessage(err)
	if domain.IsCredentialInvalid(err) {
		if m.gate != nil {
			m.gate.Invalidate()
		}
		m.logger.Warn().Err(err).Msg("workflow: credential rejected, gate closed")
		m.setStateLocked(domain.StateAwaitingCredential)
		return err
	}
	m.logger.Error().Err(err).Msg("workflow: job failed")
	m.setStateLocked(domain.StateFailed)
	return err
}

// transition moves from exactly the given state; any other current state is
// left alone (a concurrent reset cannot be overridden by a stale job).
func (m *Machine) transition(from, to domain.WorkflowState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == from {
		m.setStateLocked(to)
	}
}

func (m *Machine) setStateLocked(to domain.WorkflowState) {
	from := m.state
	if from == to {
		return
	}
	m.state = to
	if m.observer != nil {
		m.observer.StateChanged(from, to)
	}
}
