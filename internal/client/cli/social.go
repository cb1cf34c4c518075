package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/friendgraph/internal/client/models"
)

func (a *App) Search(ctx context.Context, query string) error {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	found, err := a.social.Search(rctx, query)
	if err != nil {
		return a.noteFailure(err)
	}
	if len(found) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return nil
	}
	printUsers(a.out, found)
	return nil
}

func (a *App) Find(ctx context.Context, username string) error {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	u, err := a.social.Find(rctx, username)
	if err != nil {
		return a.noteFailure(err)
	}
	fmt.Fprintln(a.out, u)
	return nil
}

func (a *App) Add(ctx context.Context, username string) error {
	me, err := a.me()
	if err != nil {
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	other, err := a.social.AddFriend(rctx, me, username)
	if err != nil {
		return a.noteFailure(err)
	}
	fmt.Fprintf(a.out, "You and %s are now friends\n", other.FullName())
	return nil
}

func (a *App) Remove(ctx context.Context, username string) error {
	me, err := a.me()
	if err != nil {
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	other, err := a.social.RemoveFriend(rctx, me, username)
	if err != nil {
		return a.noteFailure(err)
	}
	fmt.Fprintf(a.out, "You and %s are no longer friends\n", other.FullName())
	return nil
}

// Path prints the shortest chain of friends from the current user.
func (a *App) Path(ctx context.Context, username string) error {
	me, err := a.me()
	if err != nil {
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	chain, err := a.social.PathTo(rctx, me, username)
	if err != nil {
		return a.noteFailure(err)
	}
	if len(chain) == 0 {
		fmt.Fprintf(a.out, "No connection to %s\n", username)
		return nil
	}

	names := make([]string, 0, len(chain))
	for _, u := range chain {
		names = append(names, "@"+u.Username)
	}
	fmt.Fprintf(a.out, "%s (%d hops)\n", strings.Join(names, " -> "), len(chain)-1)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	s, err := a.social.Stats(rctx)
	if err != nil {
		return a.noteFailure(err)
	}

	if s.MaxUserID == nil {
		fmt.Fprintln(a.out, "The graph is empty")
		return nil
	}
	fmt.Fprintf(a.out, "Most friends:  %s (%d)\n", *s.MaxUserID, s.MaxFriends)
	fmt.Fprintf(a.out, "Least friends: %s (%d)\n", *s.MinUserID, s.MinFriends)
	fmt.Fprintf(a.out, "Average:       %.2f\n", s.AvgFriends)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	all, err := a.social.Users(rctx)
	if err != nil {
		return a.noteFailure(err)
	}
	fmt.Fprintf(a.out, "%d users:\n", len(all))
	printUsers(a.out, all)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	if err := a.auth.Ping(rctx); err != nil {
		return a.noteFailure(err)
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "pong")
	return nil
}

func printUsers(w io.Writer, list []models.User) {
	for _, u := range list {
		fmt.Fprintf(w, "  %s\n", u)
	}
}
