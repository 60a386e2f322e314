package credential

import (
	"context"
	"testing"
)

func TestMemorySourceSeedsAndTrims(t *testing.T) {
	src := NewMemorySource(" sk-env ")
	key, err := src.APIKey(context.Background())
	if err != nil {
		t.Fatalf("APIKey error: %v", err)
	}
	if key != "sk-env" {
		t.Fatalf("APIKey() = %q, want trimmed seed", key)
	}
}

func TestMemorySourceRejectsEmptyKey(t *testing.T) {
	src := NewMemorySource("")
	if err := src.SetAPIKey(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank key")
	}
}

func TestGatePicksUpKeySetOnMemorySource(t *testing.T) {
	src := NewMemorySource("")
	gate := NewGate(src, nil, discardLogger())
	if gate.Sync(context.Background()) {
		t.Fatal("gate must start closed without a key")
	}

	if err := src.SetAPIKey(context.Background(), "sk-user"); err != nil {
		t.Fatalf("SetAPIKey error: %v", err)
	}
	if err := gate.RequestAcquisition(context.Background()); err != nil {
		t.Fatalf("RequestAcquisition error: %v", err)
	}
	if !gate.IsActive() {
		t.Fatal("gate must open once the source holds a key")
	}
	if got := gate.Credential(); got != "sk-user" {
		t.Fatalf("Credential() = %q, want the key set on the source", got)
	}
}
