// Package tcp accepts client connections and runs the framed
// request/response loop for each of them.
package tcp

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"github.com/dmitrijs2005/friendgraph/internal/protocol"
)

// Handler answers one request. It must always return an envelope.
type Handler interface {
	Handle(ctx context.Context, req protocol.Request) protocol.Response
}

// ConnObserver is told when connections open and close.
type ConnObserver interface {
	ConnOpened()
	ConnClosed()
}

type Server struct {
	address  string
	maxFrame int
	handler  Handler
	logger   logging.Logger
	observer ConnObserver
	ready    chan struct{}
	addr     net.Addr

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

func NewServer(address string, maxFrame int, h Handler, l logging.Logger, obs ConnObserver) *Server {
	return &Server{
		address:  address,
		maxFrame: maxFrame,
		handler:  h,
		logger:   l.With("module", "tcp_server"),
		observer: obs,
		ready:    make(chan struct{}),
		conns:    make(map[net.Conn]struct{}),
	}
}

// Ready is closed once Run is accepting; Addr is valid from then on.
func (s *Server) Ready() <-chan struct{} { return s.ready }

func (s *Server) Addr() net.Addr { return s.addr }

// Run accepts connections until ctx is canceled, then closes every live
// connection and waits for their goroutines to finish.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping TCP server...")
		_ = listen.Close()
		s.closeAll()
	}()

	s.logger.Info(ctx, "Starting TCP server", "address", listen.Addr().String())
	s.addr = listen.Addr()
	close(s.ready)

	for {
		conn, err := listen.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Warn(ctx, "accept failed", "error", err)
			time.Sleep(50 * time.Millisecond)
			continue
		}

		if !s.track(conn) {
			_ = conn.Close()
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}

	s.wg.Wait()
	return nil
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// closeAll closes live connections and refuses new ones.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.conns = nil
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	log := s.logger.With("remote", remote)

	if s.observer != nil {
		s.observer.ConnOpened()
		defer s.observer.ConnClosed()
	}
	defer s.untrack(conn)
	defer conn.Close()

	log.Info(ctx, "client connected")
	c := protocol.NewConn(conn, s.maxFrame)

	for {
		var req protocol.Request
		if err := c.Recv(&req); err != nil {
			switch {
			case errors.Is(err, protocol.ErrConnectionClosed):
				log.Info(ctx, "client disconnected")
			default:
				log.Warn(ctx, "protocol error, closing connection", "error", err)
			}
			return
		}

		resp := s.handler.Handle(ctx, req)
		if err := c.Send(resp); err != nil {
			log.Warn(ctx, "write failed, closing connection", "type", req.Type, "error", err)
			return
		}
	}
}
