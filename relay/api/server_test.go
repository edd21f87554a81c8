package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestServerLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	port := freePort(t)
	s := NewServer(zerolog.Nop(), port, NewMockLedgerReader(ctrl), NewMockRequestSubmitter(ctrl), NewMockOutcomeIndex(ctrl), nil)

	require.NoError(t, s.Start())

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "OK", string(body))

	// the port is taken while the server runs
	other := NewServer(zerolog.Nop(), port, nil, nil, nil, nil)
	assert.ErrorContains(t, other.Start(), "failed to bind")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestMetricsUnrouted(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewServer(zerolog.Nop(), 0, NewMockLedgerReader(ctrl), NewMockRequestSubmitter(ctrl), NewMockOutcomeIndex(ctrl), nil)

	w := httptestGet(s, "/metrics")
	assert.Equal(t, http.StatusNotFound, w)
}

func httptestGet(s *Server, target string) int {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w.Code
}
