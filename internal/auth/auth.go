// Package auth implements the implicit-grant token lifecycle: authorize
// URL construction, callback fragment parsing, durable persistence, and
// invalidation after an authorization failure.
//
// The manager never refreshes a token. The only recovery path after
// [Manager.Invalidate] is a full redirect through [Manager.AuthURL],
// which the caller must trigger explicitly.
package auth

import (
	"fmt"
	"strings"

	"github.com/ac1714/chirp/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// Manager owns the implicit-grant session. It depends on a [Store] for
// persistence; collaborators receive the manager, not the store.
type Manager struct {
	config *oauth2.Config
	store  *Store
}

// NewManager creates a Manager from the client registration in config.
func NewManager(cfg shared.SpotifyConfig, store *Store) (*Manager, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	config := &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Scopes:      strings.Fields(cfg.Scope),
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &Manager{config: config, store: store}, nil
}

// AuthURL returns the provider authorization URL for the implicit grant:
// the access token comes back in the redirect URL fragment, with no
// server-side exchange step.
func (m *Manager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", "token"))
}

// RedirectURI returns the registered callback URI.
func (m *Manager) RedirectURI() string {
	return m.config.RedirectURL
}

// HasIncomingToken reports whether currentURL carries an access_token
// marker. When it does, the token is parsed out of the URL fragment and
// persisted immediately; the caller is responsible for stripping the
// fragment from the visible URL so it is not consumed twice.
func (m *Manager) HasIncomingToken(currentURL string) (bool, error) {
	if !strings.Contains(currentURL, "access_token") {
		return false, nil
	}

	_, fragment, found := strings.Cut(currentURL, "#")
	if !found {
		return false, fmt.Errorf("%w: access_token outside fragment", shared.ErrMalformedCallback)
	}

	token, err := ParseFragment(fragment)
	if err != nil {
		return false, err
	}

	if err := m.store.Save(token); err != nil {
		return false, fmt.Errorf("failed to persist token: %w", err)
	}

	return true, nil
}

// Consume parses a callback fragment and persists the resulting token.
func (m *Manager) Consume(fragment string) (*Token, error) {
	token, err := ParseFragment(fragment)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}

// Token returns the persisted token, or [shared.ErrNotAuthenticated]
// when none exists.
func (m *Manager) Token() (*Token, error) {
	token, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return token, nil
}

// AccessToken returns the bearer credential for authenticated API calls.
func (m *Manager) AccessToken() (string, error) {
	token, err := m.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Authenticated reports whether a token is currently persisted.
func (m *Manager) Authenticated() bool {
	token, err := m.store.Load()
	return err == nil && token != nil
}

// Invalidate clears the persisted token, marking the session
// unauthenticated. Called when a remote call reports the token invalid.
func (m *Manager) Invalidate() error {
	return m.store.Clear()
}
