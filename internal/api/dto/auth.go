package dto

import (
	"strings"

	"github.com/mjfashion/billdesk/internal/domain/auth"
	"github.com/mjfashion/billdesk/internal/validator"
)

type SignInRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse is the signed-in user, token included
type SignInResponse struct {
	*auth.User `json:",inline"`
}

func (r *SignInRequest) Validate() error {
	r.UserName = strings.TrimSpace(r.UserName)
	return validator.ValidateRequest(r)
}
