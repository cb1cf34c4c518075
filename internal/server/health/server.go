// Package health serves the standard gRPC health checking protocol so
// orchestrators can probe the friendgraph server.
package health

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported alongside the overall ("") status.
const ServiceName = "friendgraph"

type Server struct {
	address string
	logger  logging.Logger
	status  *grpchealth.Server
	ready   chan struct{}
	addr    net.Addr
}

// NewServer starts in NOT_SERVING; call SetServing once the TCP listener is
// up.
func NewServer(address string, logger logging.Logger) *Server {
	s := &Server{
		address: address,
		logger:  logger.With("module", "health"),
		status:  grpchealth.NewServer(),
		ready:   make(chan struct{}),
	}
	s.SetServing(false)
	return s
}

func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.status.SetServingStatus("", st)
	s.status.SetServingStatus(ServiceName, st)
}

// Ready is closed once Run is listening; Addr is valid from then on.
func (s *Server) Ready() <-chan struct{} { return s.ready }

func (s *Server) Addr() net.Addr { return s.addr }

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.status)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping health server...")
		s.status.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting health server", "address", listen.Addr().String())
	s.addr = listen.Addr()
	close(s.ready)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
