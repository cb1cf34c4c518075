// Package metrics exposes server counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "friendgraph"

// GraphSizer reports the current number of nodes and edges.
type GraphSizer interface {
	Size() (nodes, edges int)
}

// Metrics owns a private registry so several servers can coexist in one
// process (tests, mostly).
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	openConns       prometheus.Gauge
}

func New(graph GraphSizer) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled, by message type and response status.",
		}, []string{"type", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent handling a request.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"type"}),
		openConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_connections",
			Help:      "Client connections currently open.",
		}),
	}

	if graph != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Users present in the friendship graph.",
		}, func() float64 {
			n, _ := graph.Size()
			return float64(n)
		})
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Friendships in the graph.",
		}, func() float64 {
			_, e := graph.Size()
			return float64(e)
		})
	}

	return m
}

// ObserveRequest records one handled request.
func (m *Metrics) ObserveRequest(msgType, status string, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(msgType, status).Inc()
	m.requestDuration.WithLabelValues(msgType).Observe(elapsed.Seconds())
}

func (m *Metrics) ConnOpened() { m.openConns.Inc() }
func (m *Metrics) ConnClosed() { m.openConns.Dec() }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Server serves /metrics until its context is canceled.
type Server struct {
	addr    string
	metrics *Metrics
	logger  logging.Logger
	ready   chan struct{}
	bound   net.Addr
}

func NewServer(addr string, m *Metrics, logger logging.Logger) *Server {
	return &Server{
		addr:    addr,
		metrics: m,
		logger:  logger.With("module", "metrics"),
		ready:   make(chan struct{}),
	}
}

// Ready is closed once Run is listening; Addr is valid from then on.
func (s *Server) Ready() <-chan struct{} { return s.ready }

func (s *Server) Addr() net.Addr { return s.bound }

func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "metrics listening", "addr", lis.Addr().String())
	s.bound = lis.Addr()
	close(s.ready)

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
