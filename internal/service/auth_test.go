package service

import (
	"testing"

	"github.com/mjfashion/billdesk/internal/api/dto"
	"github.com/mjfashion/billdesk/internal/domain/auth"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	authService AuthService
	authRepo    *testutil.InMemoryAuthRepository
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.authRepo = stores.AuthRepo.(*testutil.InMemoryAuthRepository)
	s.authRepo.AddUser("secret", &auth.User{ID: "1", UserName: "admin", Name: "Shop Admin", Token: "token-1"})

	s.authService = NewAuthService(ServiceParams{
		Logger:   s.GetLogger(),
		Config:   s.GetConfig(),
		Sessions: s.GetSessions(),
		BillRepo: stores.BillRepo,
		AuthRepo: stores.AuthRepo,
	})
}

func (s *AuthServiceSuite) TestSignIn() {
	user, err := s.authService.SignIn(s.GetContext(), &dto.SignInRequest{UserName: " admin ", Password: "secret"})
	s.Require().NoError(err)
	s.Equal("token-1", user.Token)
	s.Equal("Shop Admin", user.DisplayName())

	current, err := s.authService.CurrentUser(s.GetContext())
	s.Require().NoError(err)
	s.Equal("admin", current.UserName)
}

func (s *AuthServiceSuite) TestSignInFailures() {
	tests := []struct {
		name  string
		req   *dto.SignInRequest
		check func(error) bool
	}{
		{name: "wrong password", req: &dto.SignInRequest{UserName: "admin", Password: "nope"}, check: ierr.IsPermissionDenied},
		{name: "unknown user", req: &dto.SignInRequest{UserName: "ghost", Password: "secret"}, check: ierr.IsPermissionDenied},
		{name: "missing password", req: &dto.SignInRequest{UserName: "admin"}, check: ierr.IsValidation},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.authService.SignIn(s.GetContext(), tt.req)
			s.True(tt.check(err))

			_, err = s.authService.CurrentUser(s.GetContext())
			s.True(ierr.IsPermissionDenied(err))
		})
	}
}

func (s *AuthServiceSuite) TestSignOut() {
	_, err := s.authService.SignIn(s.GetContext(), &dto.SignInRequest{UserName: "admin", Password: "secret"})
	s.Require().NoError(err)

	s.authService.SignOut(s.GetContext())
	s.authService.SignOut(s.GetContext())

	_, err = s.authService.CurrentUser(s.GetContext())
	s.True(ierr.IsPermissionDenied(err))
}
