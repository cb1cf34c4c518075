package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/friendgraph/internal/client/client"
	"github.com/dmitrijs2005/friendgraph/internal/client/services"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Find(ctx context.Context, username string) error
	Add(ctx context.Context, username string) error
	Remove(ctx context.Context, username string) error
	Path(ctx context.Context, username string) error
	Stats(ctx context.Context) error
	Users(ctx context.Context) error
	Ping(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, search <query>, find <username>, stats, users, ping, help, exit"
	helpLoggedIn  = "Available commands: whoami (profile), search <query>, find <username>, add <username>, " +
		"remove <username>, path <username>, stats, users, ping, logout, help, exit"
)

// runREPL reads commands from reader until "exit"/"quit" or end of input.
// The first word picks the command; the rest are its arguments. Command
// errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "fg %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "h", "?":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami", "profile", "me":
			cmdErr = a.WhoAmI(ctx)
		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))
		case "find":
			cmdErr = withArg(args, "find <username>", w, func(s string) error { return a.Find(ctx, s) })
		case "add":
			cmdErr = withArg(args, "add <username>", w, func(s string) error { return a.Add(ctx, s) })
		case "remove", "rm":
			cmdErr = withArg(args, "remove <username>", w, func(s string) error { return a.Remove(ctx, s) })
		case "path":
			cmdErr = withArg(args, "path <username>", w, func(s string) error { return a.Path(ctx, s) })
		case "stats":
			cmdErr = a.Stats(ctx)
		case "users", "ls":
			cmdErr = a.Users(ctx)
		case "ping":
			cmdErr = a.Ping(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", describe(cmdErr))
		}
	}
}

func withArg(args []string, usage string, w io.Writer, fn func(string) error) error {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage:", usage)
		return nil
	}
	return fn(args[0])
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var re *client.RemoteError
	switch {
	case errors.As(err, &re):
		return re.Message
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrNotConnected):
		return "server unavailable, try again shortly"
	case errors.Is(err, services.ErrNotLoggedIn):
		return "please login first"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	return err.Error()
}
