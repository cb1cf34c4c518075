package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/friendgraph/internal/client/models"
)

// fakeClient is an in-memory client.Client.
type fakeClient struct {
	users   []models.User
	path    models.Path
	stats   models.Stats
	profile models.Profile

	err        error
	connectErr error
	pingErr    error

	password string
	calls    []string
	pairs    [][2]string
	closed   bool
}

func (f *fakeClient) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeClient) Connect(context.Context) error { f.record("connect"); return f.connectErr }
func (f *fakeClient) Close() error { f.closed = true; return nil }
func (f *fakeClient) Ping(context.Context) error { f.record("ping"); return f.pingErr }

func (f *fakeClient) Register(_ context.Context, name, lastname, username, password string) (models.User, error) {
	f.record("register")
	if f.err != nil {
		return models.User{}, f.err
	}
	f.password = password
	u := models.User{ID: "id-" + username, Name: name, Lastname: lastname, Username: username}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeClient) Login(_ context.Context, username, password string) (models.User, error) {
	f.record("login")
	if f.err != nil {
		return models.User{}, f.err
	}
	f.password = password
	return models.User{ID: "id-" + username, Username: username}, nil
}

func (f *fakeClient) SearchUser(context.Context, string) ([]models.User, error) {
	f.record("search")
	return append([]models.User(nil), f.users...), f.err
}

func (f *fakeClient) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.record("get")
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeClient) GetMyProfile(context.Context, string) (models.Profile, error) {
	f.record("profile")
	return f.profile, f.err
}

func (f *fakeClient) AddFriend(_ context.Context, a, b string) error {
	f.record("add")
	f.pairs = append(f.pairs, [2]string{a, b})
	return f.err
}

func (f *fakeClient) RemoveFriend(_ context.Context, a, b string) error {
	f.record("remove")
	f.pairs = append(f.pairs, [2]string{a, b})
	return f.err
}

func (f *fakeClient) PathBetween(context.Context, string, string) (models.Path, error) {
	f.record("path")
	return f.path, f.err
}

func (f *fakeClient) GraphStats(context.Context) (models.Stats, error) {
	f.record("stats")
	return f.stats, f.err
}

func (f *fakeClient) ListUsers(context.Context) ([]models.User, error) {
	f.record("list")
	return append([]models.User(nil), f.users...), f.err
}
