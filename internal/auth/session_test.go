package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mjfashion/billdesk/internal/cache"
	"github.com/mjfashion/billdesk/internal/config"
	domainAuth "github.com/mjfashion/billdesk/internal/domain/auth"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/logger"
	"github.com/stretchr/testify/suite"
)

type SessionStoreSuite struct {
	suite.Suite
	ctx   context.Context
	cfg   *config.Configuration
	store *SessionStore
	now   time.Time
}

func TestSessionStore(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = config.GetDefaultConfig()
	s.cfg.Auth.SessionTTL = time.Hour
	s.cfg.Auth.SessionFile = filepath.Join(s.T().TempDir(), "billdesk", "session.json")
	s.now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.store = s.newStore()
}

func (s *SessionStoreSuite) newStore() *SessionStore {
	store := NewSessionStore(s.cfg, cache.NewInMemoryCache(), logger.NewNopLogger())
	store.now = func() time.Time { return s.now }
	return store
}

func (s *SessionStoreSuite) signedToken(exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	return signed
}

func (s *SessionStoreSuite) TestCurrent_NoSession() {
	_, err := s.store.Current(s.ctx)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *SessionStoreSuite) TestSave_OpaqueTokenUsesConfiguredTTL() {
	session, err := s.store.Save(s.ctx, &domainAuth.User{UserName: "admin", Token: "opaque-token"})
	s.Require().NoError(err)
	s.Equal(s.now.Add(time.Hour), session.ExpiresAt)

	token, err := s.store.Token(s.ctx)
	s.Require().NoError(err)
	s.Equal("opaque-token", token)
}

func (s *SessionStoreSuite) TestSave_JWTExpiry() {
	exp := s.now.Add(15 * time.Minute).Truncate(time.Second)
	session, err := s.store.Save(s.ctx, &domainAuth.User{Token: s.signedToken(exp)})
	s.Require().NoError(err)
	s.True(exp.Equal(session.ExpiresAt))
}

func (s *SessionStoreSuite) TestSave_Rejected() {
	_, err := s.store.Save(s.ctx, &domainAuth.User{UserName: "admin"})
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.store.Save(s.ctx, &domainAuth.User{Token: s.signedToken(s.now.Add(-time.Minute))})
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.store.Current(s.ctx)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *SessionStoreSuite) TestSessionSharedThroughFile() {
	_, err := s.store.Save(s.ctx, &domainAuth.User{UserName: "admin", Token: "opaque-token"})
	s.Require().NoError(err)

	other := s.newStore()
	session, err := other.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal("admin", session.User.UserName)
	s.Equal("opaque-token", session.User.Token)
}

func (s *SessionStoreSuite) TestCurrent_ExpiredFileIsCleared() {
	_, err := s.store.Save(s.ctx, &domainAuth.User{Token: "opaque-token"})
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Hour)
	other := s.newStore()
	_, err = other.Current(s.ctx)
	s.True(ierr.IsPermissionDenied(err))

	_, statErr := os.Stat(s.cfg.Auth.SessionFile)
	s.True(os.IsNotExist(statErr))
}

func (s *SessionStoreSuite) TestClear() {
	_, err := s.store.Save(s.ctx, &domainAuth.User{Token: "opaque-token"})
	s.Require().NoError(err)

	s.store.Clear(s.ctx)

	_, err = s.store.Current(s.ctx)
	s.True(ierr.IsPermissionDenied(err))
	_, statErr := os.Stat(s.cfg.Auth.SessionFile)
	s.True(os.IsNotExist(statErr))
}

func (s *SessionStoreSuite) TestMemoryOnly() {
	s.cfg.Auth.SessionFile = ""
	store := s.newStore()

	_, err := store.Save(s.ctx, &domainAuth.User{Token: "opaque-token"})
	s.Require().NoError(err)

	session, err := store.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal("opaque-token", session.User.Token)

	_, err = s.newStore().Current(s.ctx)
	s.True(ierr.IsPermissionDenied(err))
}
