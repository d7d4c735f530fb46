package facebook_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/facebook"
	"github.com/donaldgifford/social-post/internal/graph"
)

func TestClient_PostToPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		message  string
		link     string
		wantLink bool
	}{
		{name: "message only", message: "Hello page"},
		{name: "with link", message: "Read this", link: "https://example.com/post", wantLink: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v22.0/999/feed", r.URL.Path)

				assert.NoError(t, r.ParseForm())
				assert.Equal(t, tt.message, r.PostForm.Get("message"))
				assert.Equal(t, "page-token", r.PostForm.Get("access_token"))
				_, hasLink := r.PostForm["link"]
				assert.Equal(t, tt.wantLink, hasLink)
				assert.Equal(t, tt.link, r.PostForm.Get("link"))

				_, _ = w.Write([]byte(`{"id":"999_123"}`))
			}))
			defer srv.Close()

			c := facebook.NewClient(graph.NewClient(srv.URL+"/v22.0", "page-token", "facebook"), "999", nil)
			post, err := c.PostToPage(context.Background(), tt.message, tt.link)
			require.NoError(t, err)
			assert.Equal(t, "999_123", post.ID)
			assert.Equal(t, "https://facebook.com/999_123", post.URL)
		})
	}
}

func TestClient_PostToPage_Rejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"(#200) The user hasn't authorized the application","code":200}}`))
	}))
	defer srv.Close()

	c := facebook.NewClient(graph.NewClient(srv.URL, "page-token", "facebook"), "999", nil)
	_, err := c.PostToPage(context.Background(), "hi", "")

	var se *apierr.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Contains(t, err.Error(), "page post failed (status 403)")
}

func TestClient_PostToPage_EmptyMessage(t *testing.T) {
	t.Parallel()

	c := facebook.NewClient(graph.NewClient("http://127.0.0.1:1", "t", "facebook"), "999", nil)
	_, err := c.PostToPage(context.Background(), "  ", "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is required")
}
