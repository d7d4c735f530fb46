package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Settings)
	}{
		{
			name: "empty file gets every default",
			yaml: ``,
			checkFunc: func(t *testing.T, cfg *Settings) {
				t.Helper()
				assert.Equal(t, "https://api.ebay.com", cfg.Ebay.APIURL)
				assert.Equal(t, "https://auth.ebay.com", cfg.Ebay.AuthURL)
				assert.Equal(t, "https://api.sandbox.ebay.com", cfg.Ebay.SandboxAPIURL)
				assert.Equal(t, "https://auth.sandbox.ebay.com", cfg.Ebay.SandboxAuthURL)
				assert.Equal(t, "localhost:8888", cfg.Ebay.CallbackAddr)
				assert.Equal(t, 120*time.Second, cfg.Ebay.AuthTimeout)
				assert.Equal(t, "https://graph.facebook.com/v22.0", cfg.Graph.URL())
				assert.Equal(t, 2*time.Second, cfg.Instagram.Image.Interval)
				assert.Equal(t, 30, cfg.Instagram.Image.MaxAttempts)
				assert.Equal(t, 3*time.Second, cfg.Instagram.Reel.Interval)
				assert.Equal(t, 60, cfg.Instagram.Reel.MaxAttempts)
				assert.Equal(t, "https://www.reddit.com/api/v1/access_token", cfg.Reddit.TokenURL)
				assert.Equal(t, "https://oauth.reddit.com", cfg.Reddit.APIURL)
				assert.Equal(t, "social-post/1.0", cfg.Reddit.UserAgent)
				assert.Equal(t, "https://api.x.com", cfg.Twitter.APIURL)
				assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Empty(t, cfg.Metrics.PushgatewayURL)
				assert.True(t, filepath.IsAbs(cfg.Ebay.TokenFile))
				assert.Equal(t, ".ebay_tokens.json", filepath.Base(cfg.Ebay.TokenFile))
			},
		},
		{
			name: "env var substitution",
			yaml: `
ebay:
  token_file: ${SP_TEST_TOKEN_DIR}/tokens.json
metrics:
  pushgateway_url: ${SP_TEST_PUSHGATEWAY}
`,
			envVars: map[string]string{
				"SP_TEST_TOKEN_DIR":   "/var/lib/social-post",
				"SP_TEST_PUSHGATEWAY": "http://pushgateway:9091",
			},
			checkFunc: func(t *testing.T, cfg *Settings) {
				t.Helper()
				assert.Equal(t, "/var/lib/social-post/tokens.json", cfg.Ebay.TokenFile)
				assert.Equal(t, "http://pushgateway:9091", cfg.Metrics.PushgatewayURL)
			},
		},
		{
			name: "full config with overrides",
			yaml: `
ebay:
  api_url: http://localhost:8089
  auth_url: http://localhost:8089
  callback_addr: 127.0.0.1:9999
  auth_timeout: 30s
graph:
  base_url: http://graph.local/
  version: v21.0
instagram:
  image:
    interval: 500ms
    max_attempts: 4
  reel:
    interval: 1s
    max_attempts: 9
reddit:
  user_agent: my-bot/2.0
twitter:
  api_url: http://x.local
http:
  timeout: 5s
logging:
  level: debug
  format: json
metrics:
  pushgateway_url: http://pgw:9091
  job: nightly
`,
			checkFunc: func(t *testing.T, cfg *Settings) {
				t.Helper()
				apiURL, authURL := cfg.Ebay.Endpoints(false)
				assert.Equal(t, "http://localhost:8089", apiURL)
				assert.Equal(t, "http://localhost:8089", authURL)
				assert.Equal(t, "127.0.0.1:9999", cfg.Ebay.CallbackAddr)
				assert.Equal(t, 30*time.Second, cfg.Ebay.AuthTimeout)
				assert.Equal(t, "http://graph.local/v21.0", cfg.Graph.URL())
				assert.Equal(t, 500*time.Millisecond, cfg.Instagram.Image.Interval)
				assert.Equal(t, 4, cfg.Instagram.Image.MaxAttempts)
				assert.Equal(t, 9, cfg.Instagram.Reel.MaxAttempts)
				assert.Equal(t, "my-bot/2.0", cfg.Reddit.UserAgent)
				assert.Equal(t, "http://x.local", cfg.Twitter.APIURL)
				assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "nightly", cfg.Metrics.Job)
			},
		},
		{
			name: "invalid logging level",
			yaml: `
logging:
  level: loud
`,
			wantErr: `logging.level must be one of: debug, info, warn, error (got "loud")`,
		},
		{
			name: "invalid logging format",
			yaml: `
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json (got "xml")`,
		},
		{
			name: "negative poll budget",
			yaml: `
instagram:
  reel:
    max_attempts: -1
`,
			wantErr: "instagram.reel.max_attempts must be positive",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadOptional(t *testing.T) {
	t.Parallel()

	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))
	_, err = LoadOptional(path)
	require.Error(t, err)
}

func TestEbaySettings_Endpoints(t *testing.T) {
	t.Parallel()

	cfg := Default()

	apiURL, authURL := cfg.Ebay.Endpoints(false)
	assert.Equal(t, "https://api.ebay.com", apiURL)
	assert.Equal(t, "https://auth.ebay.com", authURL)

	apiURL, authURL = cfg.Ebay.Endpoints(true)
	assert.Equal(t, "https://api.sandbox.ebay.com", apiURL)
	assert.Equal(t, "https://auth.sandbox.ebay.com", authURL)
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "tokens.json"), ExpandHome("~/tokens.json"))
	assert.Equal(t, "/abs/tokens.json", ExpandHome("/abs/tokens.json"))
	assert.Equal(t, "~user/tokens.json", ExpandHome("~user/tokens.json"))
}
