package router

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/friendgraph/internal/common"
	"github.com/dmitrijs2005/friendgraph/internal/protocol"
	"github.com/dmitrijs2005/friendgraph/internal/server/users"
)

func (r *Router) ping(_ context.Context, req protocol.Request) (any, error) {
	echo := req.Payload
	if len(echo) == 0 || string(echo) == "null" {
		echo = json.RawMessage("{}")
	}
	return map[string]any{"pong": true, "echo": echo}, nil
}

func (r *Router) register(ctx context.Context, req protocol.Request) (any, error) {
	var p protocol.RegisterPayload
	if err := r.decodeSecure(req, &p); err != nil {
		return nil, err
	}

	u, err := r.deps.Auth.Register(ctx, p.Name, p.Lastname, p.Username, p.Password)
	if err != nil {
		return nil, err
	}
	if err := r.deps.Graph.EnsureUser(ctx, u.ID); err != nil {
		return nil, err
	}

	r.log.Info(ctx, "user registered", "username", u.Username, "user_id", u.ID)
	return u.Public(), nil
}

func (r *Router) login(ctx context.Context, req protocol.Request) (any, error) {
	var p protocol.LoginPayload
	if err := r.decodeSecure(req, &p); err != nil {
		return nil, err
	}

	u, err := r.deps.Auth.Login(ctx, p.Username, p.Password)
	if err != nil {
		return nil, err
	}
	if err := r.deps.Graph.EnsureUser(ctx, u.ID); err != nil {
		return nil, err
	}

	return u.Public(), nil
}

func (r *Router) searchUser(ctx context.Context, req protocol.Request) (any, error) {
	var p protocol.SearchPayload
	if err := r.decode(req.Payload, &p); err != nil {
		return nil, err
	}

	results, err := r.deps.Users.SearchByName(ctx, p.Query)
	if err != nil {
		return nil, err
	}
	return map[string]any{"results": results}, nil
}

func (r *Router) getUserByUsername(ctx context.Context, req protocol.Request) (any, error) {
	var p protocol.UsernamePayload
	if err := r.decode(req.Payload, &p); err != nil {
		return nil, err
	}

	u, err := r.deps.Users.FindByUsername(ctx, p.Username)
	if errors.Is(err, common.ErrNotFound) {
		return map[string]any{"user": nil}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"user": u.Public()}, nil
}

func (r *Router) getMyProfile(ctx context.Context, req protocol.Request) (any, error) {
	var p protocol.UserIDPayload
	if err := r.decode(req.Payload, &p); err != nil {
		return nil, err
	}

	me, err := r.deps.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	friends := make([]users.PublicUser, 0)
	for _, id := range r.deps.Graph.FriendsOf(me.ID) {
		f, err := r.deps.Users.GetByID(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			// graph nodes without a directory record are skipped
			continue
		}
		if err != nil {
			return nil, err
		}
		friends = append(friends, f.Public())
	}

	return map[string]any{"me": me.Public(), "friends": friends}, nil
}

func (r *Router) addFriend(ctx context.Context, req protocol.Request) (any, error) {
	var p protocol.FriendPairPayload
	if err := r.decode(req.Payload, &p); err != nil {
		return nil, err
	}

	for _, id := range []string{p.A, p.B} {
		if _, err := r.deps.Users.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := r.deps.Graph.AddFriendship(ctx, p.A, p.B); err != nil {
		return nil, err
	}
	return map[string]any{"added": true}, nil
}

func (r *Router) removeFriend(ctx context.Context, req protocol.Request) (any, error) {
	var p protocol.FriendPairPayload
	if err := r.decode(req.Payload, &p); err != nil {
		return nil, err
	}

	if err := r.deps.Graph.RemoveFriendship(ctx, p.A, p.B); err != nil {
		return nil, err
	}
	return map[string]any{"removed": true}, nil
}

func (r *Router) pathBetween(_ context.Context, req protocol.Request) (any, error) {
	var p protocol.PathPayload
	if err := r.decode(req.Payload, &p); err != nil {
		return nil, err
	}

	path := r.deps.Paths.FindPath(p.Src, p.Dst)
	return map[string]any{"exists": len(path) > 0, "path": path}, nil
}

func (r *Router) graphStats(context.Context, protocol.Request) (any, error) {
	return r.deps.Stats.Compute(), nil
}

func (r *Router) listUsers(ctx context.Context, _ protocol.Request) (any, error) {
	all, err := r.deps.Users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"users": users.PublicAll(all)}, nil
}
