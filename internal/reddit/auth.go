package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/metrics"
)

// ErrAuthFailed is returned when the password grant does not yield an
// access token.
var ErrAuthFailed = errors.New("reddit authentication failed")

// TokenSource yields a bearer token for API calls.
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// PasswordTokenSource obtains a script-app token with the OAuth2 password
// grant. Tokens are held in memory only.
type PasswordTokenSource struct {
	cfg      oauth2.Config
	username string
	password string
	client   *http.Client
}

// NewPasswordTokenSource creates a token source posting to tokenURL. client
// must already set the User-Agent (see NewHTTPClient).
func NewPasswordTokenSource(
	tokenURL, clientID, clientSecret, username, password string,
	client *http.Client,
) *PasswordTokenSource {
	return &PasswordTokenSource{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		username: username,
		password: password,
		client:   client,
	}
}

// Token runs the password grant.
func (s *PasswordTokenSource) Token(ctx context.Context) (tok *oauth2.Token, err error) {
	defer func() {
		metrics.TokenRefreshesTotal.WithLabelValues(platform, metrics.ResultLabel(err)).Inc()
	}()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)

	tok, err = s.cfg.PasswordCredentialsToken(ctx, s.username, s.password)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthFailed, &apierr.StatusError{
				Op:         "token request",
				StatusCode: re.Response.StatusCode,
				Body:       string(re.Body),
			})
		}
		return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	return tok, nil
}

// userAgentTransport stamps every request with the User-Agent Reddit
// requires of API clients.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// NewHTTPClient wraps base so every request carries userAgent. A nil base
// uses http.DefaultClient's transport and no timeout.
func NewHTTPClient(base *http.Client, userAgent string) *http.Client {
	c := &http.Client{}
	if base != nil {
		*c = *base
	}
	rt := c.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	c.Transport = &userAgentTransport{userAgent: userAgent, base: rt}
	return c
}
