package main

import "errors"

// Jobs are the Pushgateway job names, one per binary.
var Jobs = []string{"ebay-list", "fb-post", "ig-post", "reddit-post", "tweet"}

// KnownMetrics is the set of metric names pushed by the social-post
// binaries plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Remote API metrics.
	"social_post_api_calls_total":           true,
	"social_post_api_call_duration_seconds": true,

	// Publishing metrics.
	"social_post_published_total":           true,
	"social_post_media_poll_attempts_total": true,

	// Auth metrics.
	"social_post_token_refreshes_total": true,

	// Recording rules.
	"social_post:api_calls:rate5m":      true,
	"social_post:api_errors:rate5m":     true,
	"social_post:published:rate5m":      true,
	"social_post:token_failures:rate5m": true,

	// Added by the Pushgateway to every group.
	"push_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
