// Package auth manages session-key authentication against the search
// backend. A static API token in config bypasses the session flow.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"loghound-mcp/internal/constants"
	"loghound-mcp/internal/models"
)

// Session TTL reported by the backend is not exposed on the login
// response, so the manager assumes the default server-side timeout and
// refreshes inside a safety window before it.
const (
	defaultSessionTTL    = time.Hour
	sessionRefreshBuffer = 2 * time.Minute
)

// SessionManager caches a backend session key and refreshes it before
// expiry. Safe for concurrent use.
type SessionManager struct {
	mu        sync.RWMutex
	key       string
	expiresAt time.Time
}

// NewSessionManager returns an empty manager; the first Key call logs in.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Key returns a valid session key, logging in to the backend when the
// cached key is missing or inside the refresh window.
func (s *SessionManager) Key(ctx context.Context, client *http.Client, cfg models.Config) (string, error) {
	s.mu.RLock()
	if s.valid() {
		key := s.key
		s.mu.RUnlock()
		return key, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if s.valid() {
		return s.key, nil
	}

	key, err := login(ctx, client, cfg)
	if err != nil {
		return "", fmt.Errorf("session login failed: %w", err)
	}

	s.key = key
	s.expiresAt = time.Now().Add(defaultSessionTTL)
	return key, nil
}

// Invalidate drops the cached key, forcing a fresh login on the next
// Key call. Used after the backend rejects a request as unauthorized.
func (s *SessionManager) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	s.expiresAt = time.Time{}
}

// valid reports whether the cached key is usable. Callers must hold at
// least a read lock.
func (s *SessionManager) valid() bool {
	return s.key != "" && time.Now().Before(s.expiresAt.Add(-sessionRefreshBuffer))
}

// login performs the credential exchange and returns the session key.
func login(ctx context.Context, client *http.Client, cfg models.Config) (string, error) {
	if strings.TrimSpace(cfg.Username) == "" || cfg.Password == "" {
		return "", errors.New("username and password must be configured for session login")
	}

	form := url.Values{}
	form.Set("username", cfg.Username)
	form.Set("password", cfg.Password)
	form.Set("output_mode", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cfg.BaseURL+constants.EndpointAuthLogin, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set(constants.HeaderContentType, constants.HeaderContentTypeForm)
	req.Header.Set(constants.HeaderAccept, constants.HeaderContentTypeJSON)
	req.Header.Set(constants.HeaderUserAgent, constants.UserAgentLoghoundMCP)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		SessionKey string `json:"sessionKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if result.SessionKey == "" {
		return "", errors.New("login response contained no session key")
	}

	return result.SessionKey, nil
}
