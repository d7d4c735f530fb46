package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, APICallsTotal)
	assert.NotNil(t, APICallDuration)
	assert.NotNil(t, PublishedTotal)
	assert.NotNil(t, MediaPollAttemptsTotal)
	assert.NotNil(t, TokenRefreshesTotal)
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", StatusLabel(0))
	assert.Equal(t, "201", StatusLabel(http.StatusCreated))
}

func TestResultLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", ResultLabel(nil))
	assert.Equal(t, "failure", ResultLabel(errors.New("boom")))
}

func TestPush(t *testing.T) {
	t.Parallel()

	var (
		calls atomic.Int32
		path  atomic.Value
		body  atomic.Value
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		path.Store(r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		body.Store(string(b))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	PublishedTotal.WithLabelValues("test").Inc()

	err := Push(t.Context(), srv.URL, "tweet")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "/metrics/job/tweet", path.Load())
	assert.NotEmpty(t, body.Load())
}

func TestPush_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := Push(t.Context(), srv.URL, "tweet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pushing metrics")
}
