package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rentscout/api"
	"rentscout/models"
	"rentscout/storage"
)

// blobKey is the fixed durable-storage key holding the persisted token pair.
const blobKey = "session"

type State int

const (
	Unauthenticated State = iota
	Restoring
	Authenticated
)

func (s State) String() string {
	switch s {
	case Restoring:
		return "restoring"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// authAPI is the slice of the API client the session store uses.
type authAPI interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Register(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context) (*models.TokenPair, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// Store owns the current user and token pair. It satisfies api.TokenSource,
// so the API client reads credentials from here and never writes them. Safe
// for use from the UI loop plus command goroutines.
type Store struct {
	api   authAPI
	blobs storage.Store

	mu      sync.Mutex
	state   State
	user    *models.User
	tokens  *models.TokenPair
	lastErr error
}

func New(authClient authAPI, blobs storage.Store) *Store {
	return &Store{api: authClient, blobs: blobs, state: Unauthenticated}
}

// Restore loads the persisted token pair and resolves it to a user. A
// corrupt blob is treated as no session and cleared. A rejected lookup
// collapses to the logged-out state; only storage failures are returned.
func (s *Store) Restore(ctx context.Context) error {
	blob, err := s.blobs.Get(blobKey)
	if err != nil {
		return fmt.Errorf("session: read persisted tokens: %w", err)
	}
	if blob == nil {
		return nil
	}

	var pair models.TokenPair
	if err := json.Unmarshal(blob, &pair); err != nil || pair.AccessToken == "" {
		log.Printf("session: discarding corrupt token blob")
		if derr := s.blobs.Delete(blobKey); derr != nil {
			log.Printf("session: clear corrupt blob: %v", derr)
		}
		return nil
	}

	s.mu.Lock()
	s.tokens = &pair
	s.state = Restoring
	s.mu.Unlock()

	user, err := s.api.Me(ctx)
	if err != nil && api.IsUnauthorized(err) {
		// Expired access token with a live refresh token: one retry.
		if rerr := s.RefreshAccessToken(ctx); rerr != nil {
			return nil
		}
		user, err = s.api.Me(ctx)
	}
	if err != nil {
		log.Printf("session: restore lookup failed: %v", err)
		s.clear()
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.state = Authenticated
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session. Invalid credentials surface to
// the caller and are never retried here. The session becomes Authenticated
// only once the new token resolves to a user.
func (s *Store) Login(ctx context.Context, email, password string) error {
	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.setErr(err)
		return err
	}
	return s.adopt(ctx, pair)
}

// Register creates an account and signs it in, same contract as Login.
func (s *Store) Register(ctx context.Context, email, password string) error {
	pair, err := s.api.Register(ctx, email, password)
	if err != nil {
		s.setErr(err)
		return err
	}
	return s.adopt(ctx, pair)
}

// Logout clears the session locally and best-effort invalidates it
// remotely. Idempotent; never fails.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	authed := s.user != nil
	s.mu.Unlock()

	if authed {
		if err := s.api.Logout(ctx); err != nil {
			log.Printf("session: remote logout: %v", err)
		}
	}
	s.clear()
}

// RefreshAccessToken exchanges the refresh token for a new pair, replacing
// it wholesale. Any failure, transient or revoked alike, collapses to the
// logged-out state.
func (s *Store) RefreshAccessToken(ctx context.Context) error {
	s.mu.Lock()
	held := s.tokens != nil && s.tokens.RefreshToken != ""
	s.mu.Unlock()

	if !held {
		s.clear()
		return fmt.Errorf("session: no refresh token held")
	}

	pair, err := s.api.Refresh(ctx)
	if err != nil {
		s.clear()
		return fmt.Errorf("session: refresh failed: %w", err)
	}
	return s.setTokens(pair)
}

// adopt persists the pair, then resolves the user. A failed lookup clears
// everything again so a token never sits around half-adopted.
func (s *Store) adopt(ctx context.Context, pair *models.TokenPair) error {
	if err := s.setTokens(pair); err != nil {
		return err
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.clear()
		s.setErr(err)
		return fmt.Errorf("session: user lookup failed: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.state = Authenticated
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// setTokens replaces the pair and writes the whole blob in one Put.
func (s *Store) setTokens(pair *models.TokenPair) error {
	s.mu.Lock()
	s.tokens = pair
	s.mu.Unlock()

	blob, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("session: encode token blob: %w", err)
	}
	if err := s.blobs.Put(blobKey, blob); err != nil {
		return fmt.Errorf("session: persist tokens: %w", err)
	}
	return nil
}

func (s *Store) clear() {
	s.mu.Lock()
	s.user = nil
	s.tokens = nil
	s.state = Unauthenticated
	s.mu.Unlock()

	if err := s.blobs.Delete(blobKey); err != nil {
		log.Printf("session: remove persisted tokens: %v", err)
	}
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// IsAuthenticated is derived from the user, not from token presence: a token
// can be held but still unresolved or invalid.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// AccessToken implements api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.AccessToken
}

// RefreshToken implements api.TokenSource.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.RefreshToken
}

// ExpiresAt reads the access token's exp claim without verifying the
// signature (only the server can do that). Zero when absent or unparseable.
func (s *Store) ExpiresAt() time.Time {
	tok := s.AccessToken()
	if tok == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// NeedsRefresh reports whether the access token expires within leeway.
func (s *Store) NeedsRefresh(leeway time.Duration) bool {
	exp := s.ExpiresAt()
	if exp.IsZero() {
		return false
	}
	return time.Until(exp) < leeway
}
