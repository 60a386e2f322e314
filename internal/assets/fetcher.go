package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"photomotion/internal/domain"
)

// Asset holds downloaded video bytes for the current session.
type Asset struct {
	MIMEType  string
	Data      []byte
	FetchedAt time.Time
}

// Fetcher retrieves finished assets from their resolved locations. The
// credential is appended as a query qualifier because the file endpoint
// authenticates by key, not by header.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewFetcher builds a fetcher. A nil client gets a reusable default with a
// download-sized timeout.
func NewFetcher(client *http.Client, logger zerolog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &Fetcher{httpClient: client, logger: logger}
}

// Fetch downloads the asset at location using the given credential snapshot.
// Any non-2xx response is a hard failure carrying the transport status.
func (f *Fetcher) Fetch(ctx context.Context, location, apiKey string) (*Asset, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid location: %v", domain.ErrDownload, err)
	}
	q := u.Query()
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrDownload, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty response body", domain.ErrDownload)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "video/mp4"
	}
	f.logger.Info().Int("bytes", len(data)).Str("mime", mime).Msg("assets: video downloaded")
	return &Asset{MIMEType: mime, Data: data, FetchedAt: time.Now().UTC()}, nil
}
