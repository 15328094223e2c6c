package auth

import (
	"strings"

	"github.com/mjfashion/billdesk/internal/types"
)

// User is the signed-in operator as returned by the billing api
type User struct {
	ID       types.RecordID `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	UserName string         `json:"user_name,omitempty"`
	Email    string         `json:"email,omitempty"`
	Token    string         `json:"token"`
}

// HasToken reports whether the user carries a bearer token
func (u *User) HasToken() bool {
	return u != nil && strings.TrimSpace(u.Token) != ""
}

// DisplayName returns the name shown to the operator
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.UserName
}
