package testutil

import (
	"context"
	"sync"

	"github.com/mjfashion/billdesk/internal/api/dto"
	"github.com/mjfashion/billdesk/internal/domain/auth"
	ierr "github.com/mjfashion/billdesk/internal/errors"
)

// InMemoryAuthRepository is an in-memory implementation of the auth.Repository interface
type InMemoryAuthRepository struct {
	mu        sync.Mutex
	passwords map[string]string
	users     map[string]*auth.User
}

// NewInMemoryAuthRepository creates a new instance of InMemoryAuthRepository
func NewInMemoryAuthRepository() *InMemoryAuthRepository {
	return &InMemoryAuthRepository{
		passwords: make(map[string]string),
		users:     make(map[string]*auth.User),
	}
}

// AddUser registers credentials; user is returned as is on a matching sign in
func (r *InMemoryAuthRepository) AddUser(password string, user *auth.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwords[user.UserName] = password
	r.users[user.UserName] = user
}

func (r *InMemoryAuthRepository) SignIn(ctx context.Context, userName, password string) (*auth.User, error) {
	req := &dto.SignInRequest{UserName: userName, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	expected, ok := r.passwords[req.UserName]
	if !ok || expected != password {
		return nil, ierr.NewError("invalid credentials").
			WithHint("Invalid user name or password").
			Mark(ierr.ErrPermissionDenied)
	}
	u := *r.users[req.UserName]
	return &u, nil
}

// Clear removes all registered users
func (r *InMemoryAuthRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwords = make(map[string]string)
	r.users = make(map[string]*auth.User)
}
