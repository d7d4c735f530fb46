package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/social-post/internal/cli"
)

func run(t *testing.T, graphURL string, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("graph:\n  base_url: "+graphURL+"\n"), 0o600))

	a := cli.New(name)
	var errBuf bytes.Buffer
	a.Stderr = &errBuf

	root := newRootCmd(a)
	var outBuf bytes.Buffer
	root.SetOut(&outBuf)

	code = a.Run(root, append([]string{"--config", path}, args...))
	return code, outBuf.String(), errBuf.String()
}

func TestFBPost_JSONOutput(t *testing.T) {
	t.Setenv("FB_PAGE_ID", "555")
	t.Setenv("FB_ACCESS_TOKEN", "page-token")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/555/feed", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "https://example.com", r.PostForm.Get("link"))
		_, _ = w.Write([]byte(`{"id":"555_1"}`))
	}))
	defer srv.Close()

	code, out, _ := run(t, srv.URL, "--output", "json", "hello", "--link", "https://example.com")
	require.Equal(t, 0, code)

	var got struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "555_1", got.ID)
	assert.Equal(t, "https://facebook.com/555_1", got.URL)
}

func TestFBPost_MissingCredentials(t *testing.T) {
	t.Setenv("FB_PAGE_ID", "")
	t.Setenv("FB_ACCESS_TOKEN", "")

	code, _, errOut := run(t, "http://127.0.0.1:1", "hello")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "missing env vars: FB_PAGE_ID, FB_ACCESS_TOKEN")
}

func TestFBPost_StatusErrorOnStderr(t *testing.T) {
	t.Setenv("FB_PAGE_ID", "555")
	t.Setenv("FB_ACCESS_TOKEN", "expired")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token"}}`))
	}))
	defer srv.Close()

	code, out, errOut := run(t, srv.URL, "hello")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "page post failed (status 400)")
	assert.Contains(t, errOut, "Error validating access token")
}

func TestFBPost_VersionIsAMessage(t *testing.T) {
	t.Setenv("FB_PAGE_ID", "555")
	t.Setenv("FB_ACCESS_TOKEN", "page-token")

	var message atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		message.Store(r.PostForm.Get("message"))
		_, _ = w.Write([]byte(`{"id":"555_2"}`))
	}))
	defer srv.Close()

	code, out, errOut := run(t, srv.URL, "version")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "version", message.Load())
	assert.Contains(t, out, "555_2")

	code, out, _ = run(t, srv.URL, "--version")
	require.Equal(t, 0, code)
	assert.Equal(t, "fb-post dev\n", out)
}
