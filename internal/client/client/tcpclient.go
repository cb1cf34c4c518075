package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/client/models"
	"github.com/dmitrijs2005/friendgraph/internal/protocol"
)

// Sealer encrypts credential payloads.
type Sealer interface {
	EncryptJSON(v any) (string, error)
}

type TCPClient struct {
	addr        string
	dialTimeout time.Duration
	maxFrame    int
	sealer      Sealer

	mu   sync.Mutex
	conn *protocol.Conn
}

func NewTCPClient(addr string, sealer Sealer, dialTimeout time.Duration) *TCPClient {
	return &TCPClient{addr: addr, sealer: sealer, dialTimeout: dialTimeout}
}

// Connect dials the server, replacing any previous connection.
func (c *TCPClient) Connect(ctx context.Context) error {
	d := net.Dialer{Timeout: c.dialTimeout}
	nc, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = protocol.NewConn(nc, c.maxFrame)
	return nil
}

func (c *TCPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Request sends req and waits for its response. It returns the raw data of
// an ok envelope or a *RemoteError for an error envelope.
func (c *TCPClient) Request(ctx context.Context, req protocol.Request) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	deadline, _ := ctx.Deadline()
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, c.drop(err)
	}
	conn := c.conn
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := c.conn.Send(req); err != nil {
		return nil, c.drop(err)
	}

	var resp protocol.RawResponse
	if err := c.conn.Recv(&resp); err != nil {
		if ctx.Err() != nil {
			_ = c.drop(err)
			return nil, ctx.Err()
		}
		return nil, c.drop(err)
	}

	if resp.Status != protocol.StatusOK {
		return nil, &RemoteError{Type: req.Type, Message: resp.Error}
	}
	return resp.Data, nil
}

// drop closes the broken connection. Caller holds mu.
func (c *TCPClient) drop(err error) error {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *TCPClient) call(ctx context.Context, typ protocol.MessageType, payload, out any) error {
	req, err := protocol.NewRequest(string(typ), payload)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func (c *TCPClient) callSecure(ctx context.Context, typ protocol.MessageType, payload, out any) error {
	if c.sealer == nil {
		return errors.New("no sealer configured")
	}
	token, err := c.sealer.EncryptJSON(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, protocol.Request{Type: string(typ), Secure: token}, out)
}

func (c *TCPClient) do(ctx context.Context, req protocol.Request, out any) error {
	data, err := c.Request(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.Type, err)
	}
	return nil
}

func (c *TCPClient) Ping(ctx context.Context) error {
	return c.call(ctx, protocol.TypePing, nil, nil)
}

func (c *TCPClient) Register(ctx context.Context, name, lastname, username, password string) (models.User, error) {
	var u models.User
	err := c.callSecure(ctx, protocol.TypeRegister, protocol.RegisterPayload{
		Name:     name,
		Lastname: lastname,
		Username: username,
		Password: password,
	}, &u)
	return u, err
}

func (c *TCPClient) Login(ctx context.Context, username, password string) (models.User, error) {
	var u models.User
	err := c.callSecure(ctx, protocol.TypeLogin, protocol.LoginPayload{Username: username, Password: password}, &u)
	return u, err
}

func (c *TCPClient) SearchUser(ctx context.Context, query string) ([]models.User, error) {
	var out struct {
		Results []models.User `json:"results"`
	}
	if err := c.call(ctx, protocol.TypeSearchUser, protocol.SearchPayload{Query: query}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetUserByUsername returns nil without error when no such user exists.
func (c *TCPClient) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.call(ctx, protocol.TypeGetUserByUsername, protocol.UsernamePayload{Username: username}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *TCPClient) GetMyProfile(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := c.call(ctx, protocol.TypeGetMyProfile, protocol.UserIDPayload{UserID: userID}, &p)
	return p, err
}

func (c *TCPClient) AddFriend(ctx context.Context, a, b string) error {
	return c.call(ctx, protocol.TypeAddFriend, protocol.FriendPairPayload{A: a, B: b}, nil)
}

func (c *TCPClient) RemoveFriend(ctx context.Context, a, b string) error {
	return c.call(ctx, protocol.TypeRemoveFriend, protocol.FriendPairPayload{A: a, B: b}, nil)
}

func (c *TCPClient) PathBetween(ctx context.Context, src, dst string) (models.Path, error) {
	var p models.Path
	err := c.call(ctx, protocol.TypePathBetween, protocol.PathPayload{Src: src, Dst: dst}, &p)
	return p, err
}

func (c *TCPClient) GraphStats(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	err := c.call(ctx, protocol.TypeGraphStats, nil, &s)
	return s, err
}

func (c *TCPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var out struct {
		Users []models.User `json:"users"`
	}
	if err := c.call(ctx, protocol.TypeListUsers, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}
