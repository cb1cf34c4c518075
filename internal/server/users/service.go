package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/friendgraph/internal/common"
)

// PasswordHasher is satisfied by cryptox.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AuthService registers users and checks their credentials.
type AuthService struct {
	repo   Repository
	hasher PasswordHasher
}

func NewAuthService(repo Repository, hasher PasswordHasher) *AuthService {
	return &AuthService{repo: repo, hasher: hasher}
}

func (s *AuthService) Register(ctx context.Context, name, lastname, username, password string) (User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, name, lastname, username, hash)
	if err != nil {
		return User{}, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login returns the user for valid credentials. An unknown username and a
// wrong password both yield common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return User{}, common.ErrInvalidCredentials
		}
		return User{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return User{}, common.ErrInvalidCredentials
	}
	return user, nil
}
