// Package config handles loading and validating the optional YAML settings
// file and the per-platform credentials read from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the non-secret knobs shared by the social-post binaries.
// Every field has a default, so an absent settings file is valid.
type Settings struct {
	Ebay      EbaySettings      `yaml:"ebay"`
	Graph     GraphSettings     `yaml:"graph"`
	Instagram InstagramSettings `yaml:"instagram"`
	Reddit    RedditSettings    `yaml:"reddit"`
	Twitter   TwitterSettings   `yaml:"twitter"`
	HTTP      HTTPSettings      `yaml:"http"`
	Logging   LoggingConfig     `yaml:"logging"`
	Metrics   MetricsConfig     `yaml:"metrics"`
}

// EbaySettings defines eBay endpoints and the authorization flow knobs.
type EbaySettings struct {
	APIURL         string        `yaml:"api_url"`
	AuthURL        string        `yaml:"auth_url"`
	SandboxAPIURL  string        `yaml:"sandbox_api_url"`
	SandboxAuthURL string        `yaml:"sandbox_auth_url"`
	TokenFile      string        `yaml:"token_file"`
	CallbackAddr   string        `yaml:"callback_addr"`
	AuthTimeout    time.Duration `yaml:"auth_timeout"`
}

// Endpoints returns the API and auth base URLs for production or sandbox.
func (e *EbaySettings) Endpoints(sandbox bool) (apiURL, authURL string) {
	if sandbox {
		return e.SandboxAPIURL, e.SandboxAuthURL
	}
	return e.APIURL, e.AuthURL
}

// GraphSettings defines the Facebook Graph API base shared by Facebook and
// Instagram.
type GraphSettings struct {
	BaseURL string `yaml:"base_url"`
	Version string `yaml:"version"`
}

// URL returns the versioned Graph API root.
func (g *GraphSettings) URL() string {
	return strings.TrimRight(g.BaseURL, "/") + "/" + g.Version
}

// PollSettings bounds a container status poll loop.
type PollSettings struct {
	Interval    time.Duration `yaml:"interval"`
	MaxAttempts int           `yaml:"max_attempts"`
}

// InstagramSettings defines the poll budgets for images and reels.
type InstagramSettings struct {
	Image PollSettings `yaml:"image"`
	Reel  PollSettings `yaml:"reel"`
}

// RedditSettings defines Reddit endpoints and the mandatory User-Agent.
type RedditSettings struct {
	TokenURL  string `yaml:"token_url"`
	APIURL    string `yaml:"api_url"`
	UserAgent string `yaml:"user_agent"`
}

// TwitterSettings defines the X API endpoint.
type TwitterSettings struct {
	APIURL string `yaml:"api_url"`
}

// HTTPSettings defines the outbound HTTP client.
type HTTPSettings struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MetricsConfig defines the optional Pushgateway target.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	Job            string `yaml:"job"`
}

// Default returns settings with every default applied.
func Default() *Settings {
	cfg := &Settings{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML settings file, performing environment
// variable substitution and validation.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // settings path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Settings{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOptional behaves like Load but returns Default when path does not
// exist.
func LoadOptional(path string) (*Settings, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Settings) {
	applyEbayDefaults(&cfg.Ebay)
	applyGraphDefaults(&cfg.Graph)
	applyInstagramDefaults(&cfg.Instagram)
	applyRedditDefaults(&cfg.Reddit)
	applyTwitterDefaults(&cfg.Twitter)
	applyHTTPDefaults(&cfg.HTTP)
	applyLoggingDefaults(&cfg.Logging)
}

func applyEbayDefaults(e *EbaySettings) {
	if e.APIURL == "" {
		e.APIURL = "https://api.ebay.com"
	}
	if e.AuthURL == "" {
		e.AuthURL = "https://auth.ebay.com"
	}
	if e.SandboxAPIURL == "" {
		e.SandboxAPIURL = "https://api.sandbox.ebay.com"
	}
	if e.SandboxAuthURL == "" {
		e.SandboxAuthURL = "https://auth.sandbox.ebay.com"
	}
	if e.TokenFile == "" {
		e.TokenFile = "~/.ebay_tokens.json"
	}
	e.TokenFile = ExpandHome(e.TokenFile)
	if e.CallbackAddr == "" {
		e.CallbackAddr = "localhost:8888"
	}
	if e.AuthTimeout == 0 {
		e.AuthTimeout = 120 * time.Second
	}
}

func applyGraphDefaults(g *GraphSettings) {
	if g.BaseURL == "" {
		g.BaseURL = "https://graph.facebook.com"
	}
	if g.Version == "" {
		g.Version = "v22.0"
	}
}

func applyInstagramDefaults(i *InstagramSettings) {
	applyPollDefaults(&i.Image, 2*time.Second, 30)
	applyPollDefaults(&i.Reel, 3*time.Second, 60)
}

func applyPollDefaults(p *PollSettings, interval time.Duration, attempts int) {
	if p.Interval == 0 {
		p.Interval = interval
	}
	if p.MaxAttempts == 0 {
		p.MaxAttempts = attempts
	}
}

func applyRedditDefaults(r *RedditSettings) {
	if r.TokenURL == "" {
		r.TokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	if r.APIURL == "" {
		r.APIURL = "https://oauth.reddit.com"
	}
	if r.UserAgent == "" {
		r.UserAgent = "social-post/1.0"
	}
}

func applyTwitterDefaults(t *TwitterSettings) {
	if t.APIURL == "" {
		t.APIURL = "https://api.x.com"
	}
}

func applyHTTPDefaults(h *HTTPSettings) {
	if h.Timeout == 0 {
		h.Timeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

// Validate checks settings after command-line overrides have been applied.
func (s *Settings) Validate() error {
	return validate(s)
}

func validate(cfg *Settings) error {
	var errs []error

	if cfg.Ebay.AuthTimeout < 0 {
		errs = append(errs, fmt.Errorf("ebay.auth_timeout must be positive"))
	}
	if cfg.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http.timeout must be positive"))
	}

	polls := []struct {
		name string
		p    PollSettings
	}{
		{"instagram.image", cfg.Instagram.Image},
		{"instagram.reel", cfg.Instagram.Reel},
	}
	for _, poll := range polls {
		if poll.p.Interval < 0 {
			errs = append(errs, fmt.Errorf("%s.interval must be positive", poll.name))
		}
		if poll.p.MaxAttempts < 0 {
			errs = append(errs, fmt.Errorf("%s.max_attempts must be positive", poll.name))
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)",
			cfg.Logging.Level,
		))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)",
			cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}

// ExpandHome replaces a leading "~/" with the current user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
