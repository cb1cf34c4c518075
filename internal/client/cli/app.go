package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/client/client"
	"github.com/dmitrijs2005/friendgraph/internal/client/config"
	"github.com/dmitrijs2005/friendgraph/internal/client/services"
	"github.com/dmitrijs2005/friendgraph/internal/cryptox"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config *config.Config
	auth   services.AuthService
	social services.SocialService
	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	sealer, err := cryptox.NewSealerFromSecret(c.Secret)
	if err != nil {
		return nil, err
	}

	apiClient := client.NewTCPClient(c.ServerAddr, sealer, c.DialTimeout)

	return newApp(c, services.NewAuthService(apiClient), services.NewSocialService(apiClient), os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, auth services.AuthService, social services.SocialService, in io.Reader, out io.Writer) *App {
	return &App{config: c, auth: auth, social: social, reader: bufio.NewReader(in), out: out}
}

// Run connects, starts the online watcher and blocks in the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.auth.Close()

	fmt.Fprintln(a.out, "Welcome to friendgraph CLI (type 'help' for commands)")

	a.reconnect(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.CheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.auth.Current(); ok {
		s = u.Username + " "
	}
	s += string(a.getMode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.Current()
	return ok
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

// reconnect redials the server and updates the mode.
func (a *App) reconnect(ctx context.Context) {
	if err := a.auth.Reconnect(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval and redials when
// the ping fails.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
			err := a.auth.Ping(pctx)
			cancel()

			if err == nil {
				a.setMode(ModeOnline)
				continue
			}
			a.reconnect(ctx)

		case <-ctx.Done():
			return
		}
	}
}

// requestCtx bounds a single command by the configured request timeout.
func (a *App) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
