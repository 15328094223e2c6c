package auth

import "context"

// Repository exchanges operator credentials for a signed-in user
type Repository interface {
	SignIn(ctx context.Context, userName, password string) (*User, error)
}
