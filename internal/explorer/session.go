// Package explorer implements the client side of the country explorer:
// session state, the API client, and the catalog view.
package explorer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/countryexplorer/countryexplorer/internal/auth"
)

// State is the session's authentication state.
type State int

const (
	// Anonymous means no valid session token is held.
	Anonymous State = iota
	// Authenticated means a token is held and attached to API calls.
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session tracks the current user across client invocations. Tokens are
// decoded without signature verification; the server re-verifies every
// request, and a 401 response is the signal to drop back to Anonymous.
type Session struct {
	mu     sync.Mutex
	store  TokenStore
	state  State
	token  string
	userID string
}

// NewSession creates an Anonymous session backed by store. Call
// Rehydrate to restore a previously saved session.
func NewSession(store TokenStore) *Session {
	return &Session{store: store, state: Anonymous}
}

// RehydrateResult reports what Rehydrate found in the token store.
type RehydrateResult struct {
	State  State
	UserID string
	// Cleared is true when a stored token was corrupt and removed.
	Cleared bool
}

// Rehydrate restores session state from the token store. A missing
// token leaves the session Anonymous; a corrupt token is cleared.
func (s *Session) Rehydrate() (RehydrateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return RehydrateResult{State: Anonymous}, nil
		}
		return RehydrateResult{}, fmt.Errorf("loading session: %w", err)
	}

	userID, err := auth.DecodeUnverified(token)
	if err != nil {
		if clearErr := s.store.Clear(); clearErr != nil {
			return RehydrateResult{}, fmt.Errorf("clearing corrupt token: %w", clearErr)
		}
		return RehydrateResult{State: Anonymous, Cleared: true}, nil
	}

	s.state = Authenticated
	s.token = token
	s.userID = userID
	return RehydrateResult{State: Authenticated, UserID: userID}, nil
}

// Login transitions to Authenticated with the given token and persists
// it. The token is not signature-checked here.
func (s *Session) Login(token string) error {
	userID, err := auth.DecodeUnverified(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.state = Authenticated
	s.token = token
	s.userID = userID
	return nil
}

// Logout clears the stored token and returns to Anonymous. Logging out
// of an Anonymous session is a no-op.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.state = Anonymous
	s.token = ""
	s.userID = ""
	return nil
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the raw session token, or "" when Anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// UserID returns the user id decoded from the token, or "" when
// Anonymous.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}
