package assets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"photomotion/internal/domain"
)

func testFetcher(client *http.Client) *Fetcher {
	return NewFetcher(client, zerolog.New(io.Discard))
}

func TestFetchAppendsCredentialQuery(t *testing.T) {
	var gotKey, gotAlt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotAlt = r.URL.Query().Get("alt")
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write([]byte("mp4bytes"))
	}))
	defer srv.Close()

	asset, err := testFetcher(srv.Client()).Fetch(context.Background(), srv.URL+"/files/v1?alt=media", "sk-live")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotKey != "sk-live" {
		t.Fatalf("key query = %q, want sk-live", gotKey)
	}
	if gotAlt != "media" {
		t.Fatal("existing query parameters must be preserved")
	}
	if asset.MIMEType != "video/mp4" {
		t.Fatalf("MIMEType = %q", asset.MIMEType)
	}
	if string(asset.Data) != "mp4bytes" {
		t.Fatalf("Data = %q", asset.Data)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testFetcher(srv.Client()).Fetch(context.Background(), srv.URL, "sk-live")
	if !errors.Is(err, domain.ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("transport status must be surfaced, got %q", err)
	}
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if _, err := testFetcher(srv.Client()).Fetch(context.Background(), srv.URL, "k"); !errors.Is(err, domain.ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
}

func TestFetchBadLocation(t *testing.T) {
	if _, err := testFetcher(nil).Fetch(context.Background(), "://bad", "k"); !errors.Is(err, domain.ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	ref := store.Put(&Asset{MIMEType: "video/mp4", Data: []byte("v1")})
	if ref == "" {
		t.Fatal("expected a non-empty ref")
	}
	got, ok := store.Get(ref)
	if !ok || string(got.Data) != "v1" {
		t.Fatalf("Get(%q) = %v, %v", ref, got, ok)
	}

	store.Release(ref)
	if _, ok := store.Get(ref); ok {
		t.Fatal("released ref must not resolve")
	}
	store.Release(ref) // releasing twice is fine
}

func TestStoreRefsAreUnique(t *testing.T) {
	store := NewStore()
	a := store.Put(&Asset{Data: []byte("a")})
	b := store.Put(&Asset{Data: []byte("b")})
	if a == b {
		t.Fatal("refs must be unique")
	}
}
