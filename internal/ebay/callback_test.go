package ebay_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/social-post/internal/ebay"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestCallbackServer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantReason string
	}{
		{
			name:       "code captured",
			query:      "?code=v%5E1.1%23code&state=s1",
			wantStatus: http.StatusOK,
			wantCode:   "v^1.1#code",
		},
		{
			name:       "code without state accepted",
			query:      "?code=abc",
			wantStatus: http.StatusOK,
			wantCode:   "abc",
		},
		{
			name:       "error parameter surfaced",
			query:      "?error=access_denied&state=s1",
			wantStatus: http.StatusBadRequest,
			wantReason: "access_denied",
		},
		{
			name:       "no code and no error",
			query:      "",
			wantStatus: http.StatusBadRequest,
			wantReason: "unknown",
		},
		{
			name:       "state mismatch rejected",
			query:      "?code=abc&state=forged",
			wantStatus: http.StatusBadRequest,
			wantReason: "state mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cb, err := ebay.ListenForCallback("127.0.0.1:0", "s1")
			require.NoError(t, err)
			defer cb.Close()

			status, body := get(t, "http://"+cb.Addr()+"/callback"+tt.query)
			assert.Equal(t, tt.wantStatus, status)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			code, err := cb.Wait(ctx)

			if tt.wantReason != "" {
				var cbErr *ebay.CallbackError
				require.True(t, errors.As(err, &cbErr))
				assert.Equal(t, tt.wantReason, cbErr.Reason)
				assert.Contains(t, body, tt.wantReason)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, body, "Authorization successful")
		})
	}
}

func TestCallbackServer_Timeout(t *testing.T) {
	t.Parallel()

	cb, err := ebay.ListenForCallback("127.0.0.1:0", "")
	require.NoError(t, err)
	defer cb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = cb.Wait(ctx)
	require.ErrorIs(t, err, ebay.ErrAuthorizationTimeout)
}

func TestCallbackServer_Canceled(t *testing.T) {
	t.Parallel()

	cb, err := ebay.ListenForCallback("127.0.0.1:0", "")
	require.NoError(t, err)
	defer cb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = cb.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCallbackServer_FirstRequestWins(t *testing.T) {
	t.Parallel()

	cb, err := ebay.ListenForCallback("127.0.0.1:0", "")
	require.NoError(t, err)
	defer cb.Close()

	status, _ := get(t, "http://"+cb.Addr()+"/callback?code=first")
	require.Equal(t, http.StatusOK, status)

	code, err := cb.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", code)
}

func TestCallbackServer_PortInUse(t *testing.T) {
	t.Parallel()

	cb, err := ebay.ListenForCallback("127.0.0.1:0", "")
	require.NoError(t, err)
	defer cb.Close()

	_, err = ebay.ListenForCallback(cb.Addr(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening for OAuth callback")
}
