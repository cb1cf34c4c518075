// Package users keeps the user directory and the register/login flow built
// on top of it.
package users

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/friendgraph/internal/common"
	"github.com/dmitrijs2005/friendgraph/internal/server/storage"
	"github.com/google/uuid"
)

// DocumentKey is the storage key of the persisted user list.
const DocumentKey = "users"

// Repository is the lookup and creation surface of the directory.
type Repository interface {
	CreateUser(ctx context.Context, name, lastname, username, passwordHash string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	SearchByName(ctx context.Context, query string) ([]PublicUser, error)
	ListAll(ctx context.Context) ([]User, error)
}

// Directory stores every user as one persisted list. Each call reads the
// list from storage; mutations hold the write lock across load, change and
// save.
type Directory struct {
	mu  sync.RWMutex
	doc *storage.Document[[]User]
	// newID is replaceable in tests.
	newID func() string
}

var _ Repository = (*Directory)(nil)

func NewDirectory(backend storage.Backend) *Directory {
	return &Directory{
		doc: storage.NewDocument(backend, DocumentKey, func() []User {
			return []User{}
		}),
		newID: func() string { return uuid.NewString() },
	}
}

// CreateUser appends a new user. Usernames are unique ignoring case.
func (d *Directory) CreateUser(ctx context.Context, name, lastname, username, passwordHash string) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list, err := d.doc.Load(ctx)
	if err != nil {
		return User{}, err
	}

	if _, ok := findUsername(list, username); ok {
		return User{}, fmt.Errorf("%w: %s", common.ErrUsernameTaken, username)
	}

	u := User{
		ID:           d.newID(),
		Name:         name,
		Lastname:     lastname,
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := d.doc.Save(ctx, append(list, u)); err != nil {
		return User{}, err
	}
	return u, nil
}

// FindByUsername matches username case-insensitively.
func (d *Directory) FindByUsername(ctx context.Context, username string) (User, error) {
	list, err := d.load(ctx)
	if err != nil {
		return User{}, err
	}
	u, ok := findUsername(list, username)
	if !ok {
		return User{}, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	return u, nil
}

func (d *Directory) GetByID(ctx context.Context, id string) (User, error) {
	list, err := d.load(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range list {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("user id %q: %w", id, common.ErrNotFound)
}

// SearchByName returns users whose "name lastname" contains query, ignoring
// case. An empty query matches everyone.
func (d *Directory) SearchByName(ctx context.Context, query string) ([]PublicUser, error) {
	list, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	out := make([]PublicUser, 0)
	for _, u := range list {
		if strings.Contains(strings.ToLower(u.FullName()), q) {
			out = append(out, u.Public())
		}
	}
	return out, nil
}

func (d *Directory) ListAll(ctx context.Context) ([]User, error) {
	return d.load(ctx)
}

func (d *Directory) load(ctx context.Context) ([]User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list, err := d.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []User{}
	}
	return list, nil
}

func findUsername(list []User, username string) (User, bool) {
	for _, u := range list {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return User{}, false
}
