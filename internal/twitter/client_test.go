package twitter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/twitter"
)

var creds = twitter.Credentials{
	APIKey:            "consumer-key",
	APISecret:         "consumer-secret",
	AccessToken:       "access-token",
	AccessTokenSecret: "access-secret",
}

func TestValidateText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{name: "short", text: "hello"},
		{name: "exactly 280", text: strings.Repeat("a", 280)},
		{name: "281", text: strings.Repeat("a", 281), wantErr: twitter.ErrTooLong},
		{name: "280 multibyte runes", text: strings.Repeat("é", 280)},
		{name: "281 emoji", text: strings.Repeat("🙂", 281), wantErr: twitter.ErrTooLong},
		{name: "empty", text: "", wantErr: twitter.ErrEmpty},
		{name: "whitespace", text: " \n", wantErr: twitter.ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := twitter.ValidateText(tt.text)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClient_Post(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		replyTo   string
		wantReply bool
	}{
		{name: "tweet", text: strings.Repeat("x", 280)},
		{name: "reply", text: "agreed", replyTo: "1789", wantReply: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/2/tweets", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				auth := r.Header.Get("Authorization")
				assert.True(t, strings.HasPrefix(auth, "OAuth "), auth)
				assert.Contains(t, auth, `oauth_consumer_key="consumer-key"`)
				assert.Contains(t, auth, `oauth_token="access-token"`)
				assert.Contains(t, auth, `oauth_signature_method="HMAC-SHA1"`)
				assert.Contains(t, auth, "oauth_signature=")

				var body map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, tt.text, body["text"])
				reply, hasReply := body["reply"].(map[string]any)
				assert.Equal(t, tt.wantReply, hasReply)
				if hasReply {
					assert.Equal(t, tt.replyTo, reply["in_reply_to_tweet_id"])
				}

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"data":{"id":"1800000000000000001","text":"ok"}}`))
			}))
			defer srv.Close()

			c := twitter.NewClient(creds, twitter.WithAPIURL(srv.URL))
			tw, err := c.Post(context.Background(), tt.text, tt.replyTo)
			require.NoError(t, err)
			assert.Equal(t, "1800000000000000001", tw.ID)
			assert.Equal(t, "https://x.com/i/status/1800000000000000001", tw.URL)
		})
	}
}

func TestClient_Post_TooLongMakesNoRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := twitter.NewClient(creds, twitter.WithAPIURL(srv.URL))
	_, err := c.Post(context.Background(), strings.Repeat("a", 281), "")
	require.ErrorIs(t, err, twitter.ErrTooLong)
	assert.Contains(t, err.Error(), "281 chars (max 280)")
	assert.Zero(t, hits.Load())
}

func TestClient_Post_NonCreated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "ok is not created", status: http.StatusOK, body: `{"data":{"id":"1"}}`},
		{name: "forbidden duplicate", status: http.StatusForbidden, body: `{"detail":"You are not allowed to create a Tweet with duplicate content."}`},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"title":"Unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := twitter.NewClient(creds, twitter.WithAPIURL(srv.URL)).Post(context.Background(), "hi", "")

			var se *apierr.StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.body, se.Body)
		})
	}
}
