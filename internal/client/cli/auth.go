package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/friendgraph/internal/client/client"
	"github.com/dmitrijs2005/friendgraph/internal/client/models"
	"github.com/dmitrijs2005/friendgraph/internal/client/services"
	"github.com/dmitrijs2005/friendgraph/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, last name, username and password, creates the
// account and logs it in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastname, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	u, err := a.auth.Register(rctx, name, lastname, username, password)
	if err != nil {
		return a.noteFailure(err)
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", u)
	return nil
}

// Login prompts for credentials and replaces the current session on success.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	u, err := a.auth.Login(rctx, username, password)
	if err != nil {
		return a.noteFailure(err)
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", u)
	return nil
}

func (a *App) Logout(context.Context) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}
	a.auth.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the current user with their friends.
func (a *App) WhoAmI(ctx context.Context) error {
	me, err := a.me()
	if err != nil {
		return err
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	p, err := a.social.Profile(rctx, me.ID)
	if err != nil {
		return a.noteFailure(err)
	}

	fmt.Fprintln(a.out, p.Me)
	fmt.Fprintf(a.out, "Friends (%d):\n", len(p.Friends))
	printUsers(a.out, p.Friends)
	return nil
}

func (a *App) me() (models.User, error) {
	u, ok := a.auth.Current()
	if !ok {
		return models.User{}, services.ErrNotLoggedIn
	}
	return u, nil
}

// noteFailure flips the prompt to offline when err is a transport failure.
func (a *App) noteFailure(err error) error {
	if errors.Is(err, client.ErrUnavailable) || errors.Is(err, client.ErrNotConnected) {
		a.setMode(ModeOffline)
	}
	return err
}
