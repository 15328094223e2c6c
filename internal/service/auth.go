package service

import (
	"context"

	"github.com/mjfashion/billdesk/internal/api/dto"
	"github.com/mjfashion/billdesk/internal/domain/auth"
	"github.com/mjfashion/billdesk/internal/types"
)

type AuthService interface {
	SignIn(ctx context.Context, req *dto.SignInRequest) (*auth.User, error)
	SignOut(ctx context.Context)
	CurrentUser(ctx context.Context) (*auth.User, error)
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
	}
}

// SignIn exchanges credentials for a token and keeps it as the current session
func (s *authService) SignIn(ctx context.Context, req *dto.SignInRequest) (*auth.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.AuthRepo.SignIn(ctx, req.UserName, req.Password)
	if err != nil {
		s.Logger.Infow("sign in failed",
			"user_name", req.UserName,
			"request_id", types.GetRequestID(ctx),
			"error", err)
		return nil, err
	}

	session, err := s.Sessions.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("signed in",
		"user_name", user.UserName,
		"expires_at", session.ExpiresAt)

	return session.User, nil
}

// SignOut forgets the current session; signing out twice is not an error
func (s *authService) SignOut(ctx context.Context) {
	s.Sessions.Clear(ctx)
	s.Logger.Infow("signed out")
}

func (s *authService) CurrentUser(ctx context.Context) (*auth.User, error) {
	session, err := s.Sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	return session.User, nil
}

// authorize attaches the bearer token of the current session to ctx
func authorize(ctx context.Context, params ServiceParams) (context.Context, error) {
	token, err := params.Sessions.Token(ctx)
	if err != nil {
		return nil, err
	}
	return types.SetJWT(ctx, token), nil
}
