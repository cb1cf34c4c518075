package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/friendgraph/internal/client/client"
	"github.com/dmitrijs2005/friendgraph/internal/client/models"
)

// SocialService covers lookups and friendship changes. Users are addressed
// by username here and resolved to ids before hitting the server.
type SocialService interface {
	Search(ctx context.Context, query string) ([]models.User, error)
	Find(ctx context.Context, username string) (models.User, error)
	Profile(ctx context.Context, userID string) (models.Profile, error)
	AddFriend(ctx context.Context, me models.User, username string) (models.User, error)
	RemoveFriend(ctx context.Context, me models.User, username string) (models.User, error)
	PathTo(ctx context.Context, me models.User, username string) ([]models.User, error)
	Stats(ctx context.Context) (models.Stats, error)
	Users(ctx context.Context) ([]models.User, error)
}

type socialService struct {
	client client.Client
}

func NewSocialService(c client.Client) SocialService {
	return &socialService{client: c}
}

// Search returns matches ordered by full name; equal names keep server order.
func (s *socialService) Search(ctx context.Context, query string) ([]models.User, error) {
	found, err := s.client.SearchUser(ctx, query)
	if err != nil {
		return nil, err
	}
	sortByName(found)
	return found, nil
}

func (s *socialService) Find(ctx context.Context, username string) (models.User, error) {
	u, err := s.client.GetUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return *u, nil
}

func (s *socialService) Profile(ctx context.Context, userID string) (models.Profile, error) {
	p, err := s.client.GetMyProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	sortByName(p.Friends)
	return p, nil
}

func (s *socialService) AddFriend(ctx context.Context, me models.User, username string) (models.User, error) {
	other, err := s.Find(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if err := s.client.AddFriend(ctx, me.ID, other.ID); err != nil {
		return models.User{}, err
	}
	return other, nil
}

func (s *socialService) RemoveFriend(ctx context.Context, me models.User, username string) (models.User, error) {
	other, err := s.Find(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if err := s.client.RemoveFriend(ctx, me.ID, other.ID); err != nil {
		return models.User{}, err
	}
	return other, nil
}

// PathTo returns the chain of users from me to username, both ends
// included, or an empty slice when they are not connected.
func (s *socialService) PathTo(ctx context.Context, me models.User, username string) ([]models.User, error) {
	other, err := s.Find(ctx, username)
	if err != nil {
		return nil, err
	}

	p, err := s.client.PathBetween(ctx, me.ID, other.ID)
	if err != nil {
		return nil, err
	}
	if !p.Exists {
		return []models.User{}, nil
	}

	all, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(all))
	for _, u := range all {
		byID[u.ID] = u
	}

	chain := make([]models.User, 0, len(p.Path))
	for _, id := range p.Path {
		u, ok := byID[id]
		if !ok {
			u = models.User{ID: id, Username: id}
		}
		chain = append(chain, u)
	}
	return chain, nil
}

func (s *socialService) Stats(ctx context.Context) (models.Stats, error) {
	return s.client.GraphStats(ctx)
}

func (s *socialService) Users(ctx context.Context) ([]models.User, error) {
	all, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(all)
	return all, nil
}

func sortByName(list []models.User) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].FullName() < list[j].FullName()
	})
}
