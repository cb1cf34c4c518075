package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSize struct{ nodes, edges int }

func (f fixedSize) Size() (int, int) { return f.nodes, f.edges }

func TestObserveRequest(t *testing.T) {
	m := New(nil)
	m.ObserveRequest("PING", "ok", time.Millisecond)
	m.ObserveRequest("PING", "ok", time.Millisecond)
	m.ObserveRequest("LOGIN", "error", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("PING", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("LOGIN", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestOpenConnections(t *testing.T) {
	m := New(nil)
	m.ConnOpened()
	m.ConnOpened()
	m.ConnClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.openConns))
}

func TestGraphGauges(t *testing.T) {
	m := New(fixedSize{nodes: 3, edges: 2})

	expected := `
# HELP friendgraph_graph_edges Friendships in the graph.
# TYPE friendgraph_graph_edges gauge
friendgraph_graph_edges 2
# HELP friendgraph_graph_nodes Users present in the friendship graph.
# TYPE friendgraph_graph_nodes gauge
friendgraph_graph_nodes 3
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"friendgraph_graph_nodes", "friendgraph_graph_edges")
	assert.NoError(t, err)
}

func TestHandler_ServesText(t *testing.T) {
	m := New(fixedSize{nodes: 1})
	m.ObserveRequest("PING", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `friendgraph_requests_total{status="ok",type="PING"} 1`)
}

func TestServer_RunAndStop(t *testing.T) {
	m := New(nil)
	s := NewServer("127.0.0.1:0", m, logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var addr string
	select {
	case <-s.Ready():
		addr = s.Addr().String()
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not start")
	}

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "friendgraph_open_connections")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}
