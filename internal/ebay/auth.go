package ebay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/social-post/internal/apierr"
	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

// refreshBuffer is how long before expiry the access token is refreshed.
const refreshBuffer = 300 * time.Second

// ErrReauthorize is returned when a refresh fails. There is no automatic
// fallback; the user has to run the authorization flow again.
var ErrReauthorize = errors.New("token refresh failed, run `ebay-list auth` to re-authenticate")

// UserTokenProvider implements TokenProvider for a user token pair kept in a
// TokenStore. The access token is refreshed with the stored refresh token
// once it is within five minutes of expiry.
type UserTokenProvider struct {
	clientID     string
	clientSecret string
	store        TokenStore
	tokenURL     string
	client       *http.Client
	scopes       string
	logger       *slog.Logger

	mu      sync.Mutex
	nowFunc func() time.Time // for testing
}

// OAuthOption configures the UserTokenProvider.
type OAuthOption func(*UserTokenProvider)

// WithTokenURL overrides the default eBay token endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *UserTokenProvider) {
		p.tokenURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *UserTokenProvider) {
		p.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *UserTokenProvider) {
		p.nowFunc = f
	}
}

// WithLogger sets the logger used for refresh progress.
func WithLogger(l *slog.Logger) OAuthOption {
	return func(p *UserTokenProvider) {
		p.logger = logger.OrDiscard(l)
	}
}

// NewUserTokenProvider creates a provider for the given application
// credentials and token store.
func NewUserTokenProvider(
	clientID, clientSecret string,
	store TokenStore,
	opts ...OAuthOption,
) *UserTokenProvider {
	p := &UserTokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		store:        store,
		tokenURL:     TokenURL("https://api.ebay.com"),
		client:       &http.Client{Timeout: 10 * time.Second},
		scopes:       SellScope,
		logger:       logger.Discard(),
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	ExpiresIn             int    `json:"expires_in"`
	RefreshTokenExpiresIn int    `json:"refresh_token_expires_in"`
	TokenType             string `json:"token_type"`
}

// Token returns a valid access token, refreshing first if necessary.
func (p *UserTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, err := p.store.Load()
	if err != nil {
		return "", err
	}

	if !rec.NeedsRefresh(p.nowFunc()) {
		return rec.AccessToken, nil
	}

	p.logger.Info("access token expired, refreshing")
	rec, err = p.refreshLocked(ctx, rec)
	if err != nil {
		return "", err
	}
	return rec.AccessToken, nil
}

// Refresh unconditionally exchanges the stored refresh token for a new
// access token and persists the result.
func (p *UserTokenProvider) Refresh(ctx context.Context) (*TokenRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, err := p.store.Load()
	if err != nil {
		return nil, err
	}
	return p.refreshLocked(ctx, rec)
}

func (p *UserTokenProvider) refreshLocked(
	ctx context.Context,
	prev *TokenRecord,
) (rec *TokenRecord, err error) {
	defer func() {
		metrics.TokenRefreshesTotal.WithLabelValues(platform, metrics.ResultLabel(err)).Inc()
	}()

	if prev.RefreshToken == "" {
		return nil, fmt.Errorf("%w: stored record has no refresh token", ErrReauthorize)
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {prev.RefreshToken},
		"scope":         {p.scopes},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", basicAuth(p.clientID, p.clientSecret))

	body, err := apierr.Send(p.client, req, platform, "token refresh")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReauthorize, err)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("%w: parsing token response: %w", ErrReauthorize, err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access_token: %s", ErrReauthorize, body)
	}

	rec = &TokenRecord{
		AccessToken:           tokenResp.AccessToken,
		RefreshToken:          tokenResp.RefreshToken,
		ExpiresIn:             tokenResp.ExpiresIn,
		RefreshTokenExpiresIn: tokenResp.RefreshTokenExpiresIn,
		TokenType:             tokenResp.TokenType,
		SavedAt:               unixSeconds(p.nowFunc()),
	}
	// eBay omits the refresh token on refresh; the original one stays valid.
	if rec.RefreshToken == "" {
		rec.RefreshToken = prev.RefreshToken
		rec.RefreshTokenExpiresIn = prev.RefreshTokenExpiresIn
	}

	if err := p.store.Save(rec); err != nil {
		return nil, err
	}
	p.logger.Debug("access token refreshed", "expires_in", rec.ExpiresIn)

	return rec, nil
}

func basicAuth(clientID, clientSecret string) string {
	creds := base64.StdEncoding.EncodeToString(
		[]byte(clientID + ":" + clientSecret),
	)
	return "Basic " + creds
}
