package credential

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Source supplies the current API key. An empty key with a nil error is the
// normal "no credential yet" state.
type Source interface {
	APIKey(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (string, error)

func (f SourceFunc) APIKey(ctx context.Context) (string, error) { return f(ctx) }

// StaticSource returns a Source backed by a fixed key (environment-supplied
// credentials, CLI hosts, tests).
func StaticSource(key string) Source {
	key = strings.TrimSpace(key)
	return SourceFunc(func(context.Context) (string, error) { return key, nil })
}

// Acquirer invokes the host-provided interactive credential flow.
type Acquirer interface {
	Acquire(ctx context.Context) error
}

// AcquirerFunc adapts a function to the Acquirer interface.
type AcquirerFunc func(ctx context.Context) error

func (f AcquirerFunc) Acquire(ctx context.Context) error { return f(ctx) }

// Gate tracks whether a usable credential is active for remote calls. Its
// state is best-effort: acquisition marks it active optimistically, and the
// next real request confirms or invalidates it. Probing failures are treated
// as "no credential", never as faults.
type Gate struct {
	mu       sync.Mutex
	active   bool
	key      string
	source   Source
	acquirer Acquirer
	logger   zerolog.Logger
}

// NewGate builds an inactive gate. Call Sync to consult the host probe.
func NewGate(source Source, acquirer Acquirer, logger zerolog.Logger) *Gate {
	return &Gate{source: source, acquirer: acquirer, logger: logger}
}

// Sync consults the credential source and updates the gate. It is called on
// startup and after any reset. Probe errors close the gate silently.
func (g *Gate) Sync(ctx context.Context) bool {
	key, err := g.probe(ctx)
	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.logger.Debug().Err(err).Msg("credential: probe failed, treating as absent")
		g.active = false
		g.key = ""
		return false
	}
	g.key = key
	g.active = key != ""
	return g.active
}

// IsActive reports whether the gate currently believes a usable credential
// exists.
func (g *Gate) IsActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Credential returns the current key snapshot. Every remote call of a job
// must use the same snapshot, taken when the job starts.
func (g *Gate) Credential() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.key
}

// RequestAcquisition invokes the host acquisition flow. If the invocation
// itself succeeds the gate is marked active optimistically; actual validity
// is only confirmed by the next real request.
func (g *Gate) RequestAcquisition(ctx context.Context) error {
	if g.acquirer != nil {
		if err := g.acquirer.Acquire(ctx); err != nil {
			g.logger.Warn().Err(err).Msg("credential: acquisition flow failed to start")
			return err
		}
	}
	key, err := g.probe(ctx)
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil && key != "" {
		g.key = key
	}
	g.active = true
	return nil
}

// Invalidate forces the gate closed. Called when a remote request fails with
// an authorization signature so the workflow re-prompts for a key.
func (g *Gate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = false
}

func (g *Gate) probe(ctx context.Context) (string, error) {
	if g.source == nil {
		return "", nil
	}
	key, err := g.source.APIKey(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}
