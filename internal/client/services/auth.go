// Package services contains application services for the friendgraph CLI.
// This file holds the session service: register, login, logout and the
// liveness probe used by the online watcher.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/friendgraph/internal/client/client"
	"github.com/dmitrijs2005/friendgraph/internal/client/models"
)

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrUserNotFound = errors.New("user not found")
)

// AuthService keeps track of who is logged in. The server has no sessions;
// the logged-in user only lives here.
type AuthService interface {
	Register(ctx context.Context, name, lastname, username string, password []byte) (models.User, error)
	Login(ctx context.Context, username string, password []byte) (models.User, error)
	Logout()
	Current() (models.User, bool)
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) error
	Close() error
}

type authService struct {
	client client.Client

	mu      sync.RWMutex
	current *models.User
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

// Register creates the account and logs it in.
func (a *authService) Register(ctx context.Context, name, lastname, username string, password []byte) (models.User, error) {
	u, err := a.client.Register(ctx, name, lastname, username, string(password))
	if err != nil {
		return models.User{}, err
	}
	a.set(&u)
	return u, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (models.User, error) {
	u, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return models.User{}, err
	}
	a.set(&u)
	return u, nil
}

func (a *authService) Logout() {
	a.set(nil)
}

func (a *authService) Current() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return models.User{}, false
	}
	return *a.current, true
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Reconnect dials a fresh connection. The session survives it.
func (a *authService) Reconnect(ctx context.Context) error {
	return a.client.Connect(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}

func (a *authService) set(u *models.User) {
	a.mu.Lock()
	a.current = u
	a.mu.Unlock()
}
