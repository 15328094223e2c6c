package auth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mjfashion/billdesk/internal/cache"
	"github.com/mjfashion/billdesk/internal/config"
	domainAuth "github.com/mjfashion/billdesk/internal/domain/auth"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/logger"
)

var sessionKey = cache.GenerateKey(cache.PrefixSession, "current")

// Session is the signed-in user together with the moment the token stops being usable
type Session struct {
	User      *domainAuth.User `json:"user"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionStore holds the bearer token between api calls.
// Sessions live in the cache and, when a session file is configured,
// on disk so that separate cli invocations share them.
type SessionStore struct {
	cache  cache.Cache
	file   string
	ttl    time.Duration
	logger *logger.Logger
	now    func() time.Time
}

func NewSessionStore(cfg *config.Configuration, c cache.Cache, log *logger.Logger) *SessionStore {
	return &SessionStore{
		cache:  c,
		file:   cfg.Auth.SessionFile,
		ttl:    cfg.Auth.SessionTTL,
		logger: log,
		now:    time.Now,
	}
}

// Save stores the user as the current session. The expiry is read from the
// token's exp claim when present and falls back to the configured ttl.
func (s *SessionStore) Save(ctx context.Context, user *domainAuth.User) (*Session, error) {
	if !user.HasToken() {
		return nil, ierr.NewError("sign in response carried no token").
			WithHint("The billing api did not return a token").
			Mark(ierr.ErrPermissionDenied)
	}

	session := &Session{
		User:      user,
		ExpiresAt: s.expiry(user.Token),
	}
	if session.Expired(s.now()) {
		return nil, ierr.NewError("token already expired").
			WithHint("The session has expired, please sign in again").
			Mark(ierr.ErrPermissionDenied)
	}

	if err := s.writeFile(session); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, sessionKey, session, session.ExpiresAt.Sub(s.now()))
	return session, nil
}

// Current returns the live session or ErrPermissionDenied when nobody is signed in
func (s *SessionStore) Current(ctx context.Context) (*Session, error) {
	if v, ok := s.cache.Get(ctx, sessionKey); ok {
		if session, ok := v.(*Session); ok && !session.Expired(s.now()) {
			return session, nil
		}
	}

	session, err := s.readFile()
	if err != nil {
		return nil, err
	}
	if session == nil || !session.User.HasToken() {
		return nil, ierr.NewError("no session").
			WithHint("Please sign in first").
			Mark(ierr.ErrPermissionDenied)
	}
	if session.Expired(s.now()) {
		s.Clear(ctx)
		return nil, ierr.NewError("session expired").
			WithHint("The session has expired, please sign in again").
			Mark(ierr.ErrPermissionDenied)
	}

	s.cache.Set(ctx, sessionKey, session, session.ExpiresAt.Sub(s.now()))
	return session, nil
}

// Token returns the bearer token of the live session
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return session.User.Token, nil
}

// Clear forgets the current session
func (s *SessionStore) Clear(ctx context.Context) {
	s.cache.Delete(ctx, sessionKey)
	if s.file == "" {
		return
	}
	if err := os.Remove(s.file); err != nil && !os.IsNotExist(err) {
		s.logger.Warnw("failed to remove session file", "file", s.file, "error", err)
	}
}

// expiry reads exp without verifying the signature; the api remains the
// authority on whether the token is accepted.
func (s *SessionStore) expiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.logger.Debugw("token is not a jwt, using configured session ttl", "error", err)
		return s.now().Add(s.ttl)
	}
	if claims.ExpiresAt == nil {
		return s.now().Add(s.ttl)
	}
	return claims.ExpiresAt.Time
}

func (s *SessionStore) writeFile(session *Session) error {
	if s.file == "" {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode session").
			Mark(ierr.ErrSystem)
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0o700); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to create session directory for %s", s.file).
			Mark(ierr.ErrSystem)
	}
	if err := os.WriteFile(s.file, data, 0o600); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to write session file %s", s.file).
			Mark(ierr.ErrSystem)
	}
	return nil
}

func (s *SessionStore) readFile() (*Session, error) {
	if s.file == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.file)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to read session file %s", s.file).
			Mark(ierr.ErrSystem)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warnw("ignoring unreadable session file", "file", s.file, "error", err)
		return nil, nil
	}
	return &session, nil
}
