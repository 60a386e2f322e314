package credentials

import (
	"context"
	"errors"
	"strings"

	"photomotion/internal/infra"
	"photomotion/internal/sqlinline"
)

// ProviderGemini is the provider key the Veo generation credential is stored
// under.
const ProviderGemini = "gemini"

// Store persists integration tokens in Postgres. It doubles as the host
// credential probe: a missing token reads as an empty key, not an error.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// APIKey returns the stored Gemini API key, or "" when none has been saved.
func (s *Store) APIKey(ctx context.Context) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, ProviderGemini)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetAPIKey saves the Gemini API key.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is required")
	}
	_, err := s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, ProviderGemini, key)
	return err
}
