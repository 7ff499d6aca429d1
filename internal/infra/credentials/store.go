package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"communityaid/internal/infra"
	"communityaid/internal/sqlinline"
)

// ProviderMpesa names the payment gateway credential row.
const ProviderMpesa = "mpesa"

// Store keeps third-party credentials in the integration_tokens table.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// MpesaAPIKey returns the stored gateway secret, or "" when none is stored.
func (s *Store) MpesaAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderMpesa)
}

func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetMpesaAPIKey stores the gateway secret, replacing any previous value.
func (s *Store) SetMpesaAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("mpesa api key is required")
	}
	return s.upsert(ctx, ProviderMpesa, key, nil)
}

// ResolveMpesaAPIKey prefers the configured value and falls back to the
// stored one.
func (s *Store) ResolveMpesaAPIKey(ctx context.Context, configured string) (string, error) {
	if key := strings.TrimSpace(configured); key != "" {
		return key, nil
	}
	key, err := s.MpesaAPIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("load stored mpesa key: %w", err)
	}
	return key, nil
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}
