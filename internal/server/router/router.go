// Package router turns decoded request envelopes into calls on the user
// directory and the friendship graph, and their results into response
// envelopes.
//
// Handle never fails: every error, including a panic inside a handler,
// becomes a response with status "error".
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/common"
	"github.com/dmitrijs2005/friendgraph/internal/cryptox"
	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"github.com/dmitrijs2005/friendgraph/internal/protocol"
	"github.com/dmitrijs2005/friendgraph/internal/server/stats"
	"github.com/dmitrijs2005/friendgraph/internal/server/users"
	"github.com/go-playground/validator/v10"
)

// Authenticator registers and logs in users.
type Authenticator interface {
	Register(ctx context.Context, name, lastname, username, password string) (users.User, error)
	Login(ctx context.Context, username, password string) (users.User, error)
}

// Graph is the mutable friendship graph.
type Graph interface {
	EnsureUser(ctx context.Context, id string) error
	AddFriendship(ctx context.Context, a, b string) error
	RemoveFriendship(ctx context.Context, a, b string) error
	FriendsOf(id string) []string
}

type PathFinder interface {
	FindPath(src, dst string) []string
}

type StatsEngine interface {
	Compute() stats.GraphStats
}

// Opener decrypts the secure field of credential-bearing requests.
type Opener interface {
	DecryptJSON(token string, v any) error
}

// Observer is told about every handled request.
type Observer interface {
	ObserveRequest(msgType, status string, elapsed time.Duration)
}

// Deps are the collaborators a Router dispatches to.
type Deps struct {
	Users    users.Repository
	Auth     Authenticator
	Graph    Graph
	Paths    PathFinder
	Stats    StatsEngine
	Opener   Opener
	Logger   logging.Logger
	Observer Observer
}

type handlerFunc func(ctx context.Context, req protocol.Request) (any, error)

type Router struct {
	deps     Deps
	handlers map[protocol.MessageType]handlerFunc
	validate *validator.Validate
	log      logging.Logger
}

func New(deps Deps) *Router {
	log := deps.Logger
	if log == nil {
		log = logging.Nop{}
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}

	r := &Router{deps: deps, validate: v, log: log.With("module", "router")}
	r.handlers = map[protocol.MessageType]handlerFunc{
		protocol.TypePing:              r.ping,
		protocol.TypeRegister:          r.register,
		protocol.TypeLogin:             r.login,
		protocol.TypeSearchUser:        r.searchUser,
		protocol.TypeGetUserByUsername: r.getUserByUsername,
		protocol.TypeGetMyProfile:      r.getMyProfile,
		protocol.TypeAddFriend:         r.addFriend,
		protocol.TypeRemoveFriend:      r.removeFriend,
		protocol.TypePathBetween:       r.pathBetween,
		protocol.TypeGraphStats:        r.graphStats,
		protocol.TypeListUsers:         r.listUsers,
	}
	return r
}

// Handle dispatches req and always returns an envelope.
func (r *Router) Handle(ctx context.Context, req protocol.Request) (resp protocol.Response) {
	start := time.Now()
	metricType := "unknown"

	defer func() {
		if p := recover(); p != nil {
			r.log.Error(ctx, "handler panic", "type", req.Type, "panic", fmt.Sprint(p))
			resp = protocol.Fail("internal error")
		}
		if r.deps.Observer != nil {
			r.deps.Observer.ObserveRequest(metricType, resp.Status, time.Since(start))
		}
	}()

	h, ok := r.handlers[protocol.MessageType(req.Type)]
	if !ok {
		err := fmt.Errorf("%w: %s", common.ErrUnknownType, req.Type)
		r.log.Warn(ctx, "request failed", "type", req.Type, "error", err)
		return protocol.Fail(errorMessage(err))
	}
	metricType = req.Type

	data, err := h(ctx, req)
	if err != nil {
		r.log.Warn(ctx, "request failed", "type", req.Type, "error", err)
		return protocol.Fail(errorMessage(err))
	}
	return protocol.OK(data)
}

// errorMessage picks the text a client sees for err. Anything not
// recognized is reported generically so storage details stay on the server.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, common.ErrUsernameTaken):
		return "username already exists"
	case errors.Is(err, cryptox.ErrDecryption):
		return "decryption failed"
	case errors.Is(err, common.ErrUnknownType),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidOperation),
		errors.Is(err, common.ErrNotFound):
		return err.Error()
	default:
		return "internal error"
	}
}

// decode fills dst from raw and validates it. A missing payload decodes as
// an empty object.
func (r *Router) decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid payload", common.ErrValidation)
	}
	return r.check(dst)
}

// decodeSecure decrypts req.Secure into dst and validates it.
func (r *Router) decodeSecure(req protocol.Request, dst any) error {
	if req.Secure == "" {
		return fmt.Errorf("%w: missing secure payload", common.ErrValidation)
	}
	if r.deps.Opener == nil {
		return errors.New("no opener configured")
	}
	if err := r.deps.Opener.DecryptJSON(req.Secure, dst); err != nil {
		return err
	}
	return r.check(dst)
}

func (r *Router) check(dst any) error {
	err := r.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		var missing, problems []string
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				missing = append(missing, fe.Field())
			case "maxbytes":
				problems = append(problems, fmt.Sprintf("%s longer than %s bytes", fe.Field(), fe.Param()))
			default:
				problems = append(problems, fmt.Sprintf("invalid %s", fe.Field()))
			}
		}
		if len(missing) > 0 {
			problems = append([]string{"missing " + strings.Join(missing, ", ")}, problems...)
		}
		return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(problems, "; "))
	}
	return fmt.Errorf("%w: %w", common.ErrValidation, err)
}

// maxBytes backs the maxbytes tag: the UTF-8 length of a string field in
// bytes, as opposed to max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}
