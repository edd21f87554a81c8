package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/relay/ledger"
)

func TestHandleBlock(t *testing.T) {
	m := New()

	m.HandleBlock(context.Background(), ledger.Block{
		Height: 7,
		Time:   time.Now(),
		Results: []ledger.Result{
			{Instruction: "create_match", Duration: time.Millisecond},
			{Instruction: "create_match", Err: errors.New("in use"), Codespace: "arena_host", Code: 2},
			{Err: errors.New("bad data"), Codespace: "arena_host", Code: 4},
		},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.blocks))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.height))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("create_match", ResultAccepted, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("create_match", ResultRejected, "arena_host")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unknown", ResultRejected, "arena_host")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.deliverDuration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetHeight(3)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "arenad_ledger_height 3")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
