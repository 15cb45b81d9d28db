package session

import (
	"errors"
	"fmt"

	terrors "github.com/PolarWolf314/tether/internal/errors"
	"github.com/google/uuid"
)

// Fixed storage keys.
const (
	PrivateKeyKey  = "PRIVATE_KEY"
	CSRFTokenKey   = "latestCSRFToken"
	AccessTokenKey = "JWT_TOKEN"
	SessionIDKey   = "SESSION_ID"
)

// Session is the explicit context handed to workflows in place of global browser storage.
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

// PrivateKey returns the user's private key or ErrPrivateKeyNotFound.
func (s *Session) PrivateKey() (string, error) {
	return s.get(PrivateKeyKey, terrors.ErrPrivateKeyNotFound)
}

func (s *Session) SetPrivateKey(privateKey string) error {
	return s.store.Set(PrivateKeyKey, privateKey)
}

// AccessToken returns the API bearer token or ErrAccessTokenNotFound.
func (s *Session) AccessToken() (string, error) {
	return s.get(AccessTokenKey, terrors.ErrAccessTokenNotFound)
}

func (s *Session) SetAccessToken(token string) error {
	return s.store.Set(AccessTokenKey, token)
}

// CSRFToken returns the anti-forgery token of the latest launch or ErrStateTokenNotFound.
func (s *Session) CSRFToken() (string, error) {
	return s.get(CSRFTokenKey, terrors.ErrStateTokenNotFound)
}

// SetCSRFToken overwrites the stored anti-forgery token.
func (s *Session) SetCSRFToken(token string) error {
	return s.store.Set(CSRFTokenKey, token)
}

// ID returns the identifier of the current login, or "" when nobody is logged in.
func (s *Session) ID() string {
	id, err := s.store.Get(SessionIDKey)
	if err != nil {
		return ""
	}
	return id
}

// Begin starts a new login: stores the private key, an optional access token
// and a fresh session id. Any access or anti-forgery token from an earlier
// login that the new one does not replace is dropped.
func (s *Session) Begin(privateKey, accessToken string) (string, error) {
	if err := s.SetPrivateKey(privateKey); err != nil {
		return "", fmt.Errorf("failed to store private key: %w", err)
	}
	if accessToken != "" {
		if err := s.SetAccessToken(accessToken); err != nil {
			return "", fmt.Errorf("failed to store access token: %w", err)
		}
	} else if err := s.store.Clear(AccessTokenKey); err != nil {
		return "", fmt.Errorf("failed to clear access token: %w", err)
	}
	if err := s.store.Clear(CSRFTokenKey); err != nil {
		return "", fmt.Errorf("failed to clear anti-forgery token: %w", err)
	}

	id := uuid.New().String()
	if err := s.store.Set(SessionIDKey, id); err != nil {
		return "", fmt.Errorf("failed to store session id: %w", err)
	}
	return id, nil
}

// Clear removes every session value.
func (s *Session) Clear() error {
	for _, key := range []string{PrivateKeyKey, AccessTokenKey, CSRFTokenKey, SessionIDKey} {
		if err := s.store.Clear(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

func (s *Session) get(key string, missing error) (string, error) {
	v, err := s.store.Get(key)
	if errors.Is(err, ErrNotFound) || (err == nil && v == "") {
		return "", missing
	}
	if err != nil {
		return "", err
	}
	return v, nil
}
