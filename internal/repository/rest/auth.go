package rest

import (
	"context"
	"net/http"

	"github.com/mjfashion/billdesk/internal/api/dto"
	"github.com/mjfashion/billdesk/internal/config"
	"github.com/mjfashion/billdesk/internal/domain/auth"
	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/mjfashion/billdesk/internal/httpclient"
	"github.com/mjfashion/billdesk/internal/logger"
)

const pathSignIn = "sign-in"

type authRepository struct {
	api *apiClient
}

func NewAuthRepository(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) auth.Repository {
	return &authRepository{api: newAPIClient(cfg, client, log)}
}

func (r *authRepository) SignIn(ctx context.Context, userName, password string) (*auth.User, error) {
	req := &dto.SignInRequest{UserName: userName, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp dto.SignInResponse
	if err := r.api.call(ctx, http.MethodPost, pathSignIn, false, req, &resp); err != nil {
		return nil, err
	}
	if !resp.User.HasToken() {
		return nil, ierr.NewError("sign in response carried no token").
			WithHint("Sign in failed, the billing api did not return a token").
			Mark(ierr.ErrPermissionDenied)
	}
	if resp.UserName == "" {
		resp.UserName = req.UserName
	}
	return resp.User, nil
}
