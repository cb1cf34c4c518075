package client

import (
	"context"

	"github.com/dmitrijs2005/friendgraph/internal/client/models"
)

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, lastname, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	SearchUser(ctx context.Context, query string) ([]models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetMyProfile(ctx context.Context, userID string) (models.Profile, error)
	AddFriend(ctx context.Context, a, b string) error
	RemoveFriend(ctx context.Context, a, b string) error
	PathBetween(ctx context.Context, src, dst string) (models.Path, error)
	GraphStats(ctx context.Context) (models.Stats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
