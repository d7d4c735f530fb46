package ebay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

// Authorizer runs the interactive OAuth2 authorization-code grant: open the
// consent page, capture one redirect on a loopback listener, exchange the
// code and persist the token pair.
type Authorizer struct {
	oauth        oauth2.Config
	store        TokenStore
	callbackAddr string
	timeout      time.Duration
	client       *http.Client
	openURL      func(string) error
	prompt       func(authURL string)
	logger       *slog.Logger
	nowFunc      func() time.Time
}

// AuthorizerConfig holds everything needed to build an Authorizer.
type AuthorizerConfig struct {
	ClientID     string
	ClientSecret string
	RuName       string
	APIURL       string // token endpoint base
	AuthURL      string // consent page base
	CallbackAddr string
	Timeout      time.Duration
}

// AuthorizerOption configures the Authorizer.
type AuthorizerOption func(*Authorizer)

// WithBrowserOpener replaces the system browser launcher.
func WithBrowserOpener(f func(string) error) AuthorizerOption {
	return func(a *Authorizer) {
		a.openURL = f
	}
}

// WithPrompt registers a callback that receives the consent URL before the
// browser is opened, so it can be shown to the user.
func WithPrompt(f func(authURL string)) AuthorizerOption {
	return func(a *Authorizer) {
		a.prompt = f
	}
}

// WithAuthorizerHTTPClient overrides the client used for the code exchange.
func WithAuthorizerHTTPClient(c *http.Client) AuthorizerOption {
	return func(a *Authorizer) {
		a.client = c
	}
}

// WithAuthorizerLogger sets the logger used for progress messages.
func WithAuthorizerLogger(l *slog.Logger) AuthorizerOption {
	return func(a *Authorizer) {
		a.logger = logger.OrDiscard(l)
	}
}

// WithAuthorizerNowFunc overrides the time function for testing.
func WithAuthorizerNowFunc(f func() time.Time) AuthorizerOption {
	return func(a *Authorizer) {
		a.nowFunc = f
	}
}

// NewAuthorizer creates an Authorizer persisting into store.
func NewAuthorizer(cfg AuthorizerConfig, store TokenStore, opts ...AuthorizerOption) *Authorizer {
	a := &Authorizer{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RuName,
			Scopes:       []string{SellScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   AuthorizeURL(cfg.AuthURL),
				TokenURL:  TokenURL(cfg.APIURL),
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		store:        store,
		callbackAddr: cfg.CallbackAddr,
		timeout:      cfg.Timeout,
		client:       &http.Client{Timeout: 30 * time.Second},
		openURL:      browser.OpenURL,
		prompt:       func(string) {},
		logger:       logger.Discard(),
		nowFunc:      time.Now,
	}
	if a.timeout <= 0 {
		a.timeout = 120 * time.Second
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ConsentURL returns the eBay consent page URL for state.
func (a *Authorizer) ConsentURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

// Authorize runs the full interactive flow and returns the persisted record.
func (a *Authorizer) Authorize(ctx context.Context) (*TokenRecord, error) {
	state := uuid.NewString()

	cb, err := ListenForCallback(a.callbackAddr, state)
	if err != nil {
		return nil, err
	}
	defer cb.Close() //nolint:errcheck // listener is done either way

	authURL := a.ConsentURL(state)
	a.prompt(authURL)

	a.logger.Info("opening browser for eBay authorization")
	if err := a.openURL(authURL); err != nil {
		a.logger.Warn("could not open browser, visit the URL manually", "error", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	code, err := cb.Wait(waitCtx)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("authorization code received")

	return a.Exchange(ctx, code)
}

// Exchange trades an authorization code for a token pair and saves it.
func (a *Authorizer) Exchange(ctx context.Context, code string) (rec *TokenRecord, err error) {
	defer func() {
		metrics.TokenRefreshesTotal.WithLabelValues(platform, metrics.ResultLabel(err)).Inc()
	}()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)

	tok, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return nil, &apierr.StatusError{
				Op:         "token exchange",
				StatusCode: re.Response.StatusCode,
				Body:       string(re.Body),
			}
		}
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	rec = &TokenRecord{
		AccessToken:           tok.AccessToken,
		RefreshToken:          tok.RefreshToken,
		ExpiresIn:             extraInt(tok, "expires_in"),
		RefreshTokenExpiresIn: extraInt(tok, "refresh_token_expires_in"),
		TokenType:             tok.TokenType,
		SavedAt:               unixSeconds(a.nowFunc()),
	}

	if err := a.store.Save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// extraInt reads a numeric field from the raw token response.
func extraInt(tok *oauth2.Token, key string) int {
	switch v := tok.Extra(key).(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}
