package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/friendgraph/internal/client/client"
	"github.com/dmitrijs2005/friendgraph/internal/client/services"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) rec(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error { return f.rec("register") }
func (f *fakeExec) Login(context.Context) error { f.loggedIn = true; return f.rec("login") }
func (f *fakeExec) Logout(context.Context) error { f.loggedIn = false; return f.rec("logout") }
func (f *fakeExec) WhoAmI(context.Context) error { return f.rec("whoami") }
func (f *fakeExec) Stats(context.Context) error { return f.rec("stats") }
func (f *fakeExec) Users(context.Context) error { return f.rec("users") }
func (f *fakeExec) Ping(context.Context) error { return f.rec("ping") }
func (f *fakeExec) Search(_ context.Context, q string) error { return f.rec("search:" + q) }
func (f *fakeExec) Find(_ context.Context, u string) error { return f.rec("find:" + u) }
func (f *fakeExec) Add(_ context.Context, u string) error { return f.rec("add:" + u) }
func (f *fakeExec) Remove(_ context.Context, u string) error { return f.rec("remove:" + u) }
func (f *fakeExec) Path(_ context.Context, u string) error { return f.rec("path:" + u) }

func runScript(exec execIface, lines ...string) string {
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "(status)" }, rdr(strings.Join(lines, "\n")), &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}

	out := runScript(exec,
		"help",
		"login",
		"help",
		"",
		"search ana lopez",
		"find bob",
		"add bob",
		"rm bob",
		"path cid",
		"whoami",
		"stats",
		"users",
		"ping",
		"foobar",
		"logout",
		"register",
		"exit",
		"ping",
	)

	assert.Equal(t, []string{
		"login", "search:ana lopez", "find:bob", "add:bob", "remove:bob", "path:cid",
		"whoami", "stats", "users", "ping", "logout", "register",
	}, exec.calls)
	assert.Contains(t, out, helpLoggedOut)
	assert.Contains(t, out, helpLoggedIn)
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "fg (status)> ")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))
}

func TestRunREPL_UsageWhenArgumentMissing(t *testing.T) {
	exec := &fakeExec{}

	out := runScript(exec, "add", "path a b", "find")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Usage: add <username>")
	assert.Contains(t, out, "Usage: path <username>")
	assert.Contains(t, out, "Usage: find <username>")
}

func TestRunREPL_StopsAtEndOfInput(t *testing.T) {
	exec := &fakeExec{}

	runScript(exec, "ping", "stats")

	assert.Equal(t, []string{"ping", "stats"}, exec.calls)
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	exec := &fakeExec{err: &client.RemoteError{Type: "ADD_FRIEND", Message: "invalid operation: cannot befriend yourself"}}

	out := runScript(exec, "add me")

	assert.Contains(t, out, "Error: invalid operation: cannot befriend yourself\n")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&client.RemoteError{Type: "LOGIN", Message: "invalid credentials"}, "invalid credentials"},
		{fmt.Errorf("%w: dial refused", client.ErrUnavailable), "server unavailable, try again shortly"},
		{client.ErrNotConnected, "server unavailable, try again shortly"},
		{services.ErrNotLoggedIn, "please login first"},
		{context.DeadlineExceeded, "request timed out"},
		{errors.New("other"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err))
	}
}
