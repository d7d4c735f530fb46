package config

import (
	"strings"
)

// Source looks up a configuration value by its environment variable name.
// *viper.Viper with AutomaticEnv satisfies it.
type Source interface {
	GetString(key string) string
}

// MissingEnvError lists required environment variables that were unset or
// empty, in declaration order.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return "missing env vars: " + strings.Join(e.Names, ", ")
}

// Required variable names per platform.
var (
	EbayEnv      = []string{"EBAY_CLIENT_ID", "EBAY_CLIENT_SECRET", "EBAY_RUNAME"}
	FacebookEnv  = []string{"FB_PAGE_ID", "FB_ACCESS_TOKEN"}
	InstagramEnv = []string{"IG_USER_ID", "IG_ACCESS_TOKEN"}
	RedditEnv    = []string{"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USERNAME", "REDDIT_PASSWORD"}
	TwitterEnv   = []string{
		"TWITTER_API_KEY",
		"TWITTER_API_SECRET",
		"TWITTER_ACCESS_TOKEN",
		"TWITTER_ACCESS_TOKEN_SECRET",
	}
)

// EbayCredentials are the registered eBay application credentials.
type EbayCredentials struct {
	ClientID     string
	ClientSecret string
	RuName       string
	Sandbox      bool
}

// FacebookCredentials identify the page to post to.
type FacebookCredentials struct {
	PageID      string
	AccessToken string
}

// InstagramCredentials identify the business or creator account.
type InstagramCredentials struct {
	UserID      string
	AccessToken string
}

// RedditCredentials are a script-app client plus the account it acts as.
type RedditCredentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// TwitterCredentials are the four static OAuth1.0a values.
type TwitterCredentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// LoadEbayCredentials reads eBay credentials from src.
func LoadEbayCredentials(src Source) (*EbayCredentials, error) {
	v, err := requireEnv(src, EbayEnv)
	if err != nil {
		return nil, err
	}
	return &EbayCredentials{
		ClientID:     v[0],
		ClientSecret: v[1],
		RuName:       v[2],
		Sandbox:      truthy(src.GetString("EBAY_SANDBOX")),
	}, nil
}

// LoadFacebookCredentials reads Facebook credentials from src.
func LoadFacebookCredentials(src Source) (*FacebookCredentials, error) {
	v, err := requireEnv(src, FacebookEnv)
	if err != nil {
		return nil, err
	}
	return &FacebookCredentials{PageID: v[0], AccessToken: v[1]}, nil
}

// LoadInstagramCredentials reads Instagram credentials from src.
func LoadInstagramCredentials(src Source) (*InstagramCredentials, error) {
	v, err := requireEnv(src, InstagramEnv)
	if err != nil {
		return nil, err
	}
	return &InstagramCredentials{UserID: v[0], AccessToken: v[1]}, nil
}

// LoadRedditCredentials reads Reddit credentials from src.
func LoadRedditCredentials(src Source) (*RedditCredentials, error) {
	v, err := requireEnv(src, RedditEnv)
	if err != nil {
		return nil, err
	}
	return &RedditCredentials{
		ClientID:     v[0],
		ClientSecret: v[1],
		Username:     v[2],
		Password:     v[3],
	}, nil
}

// LoadTwitterCredentials reads Twitter credentials from src.
func LoadTwitterCredentials(src Source) (*TwitterCredentials, error) {
	v, err := requireEnv(src, TwitterEnv)
	if err != nil {
		return nil, err
	}
	return &TwitterCredentials{
		APIKey:            v[0],
		APISecret:         v[1],
		AccessToken:       v[2],
		AccessTokenSecret: v[3],
	}, nil
}

// requireEnv returns the values of names in order, or a *MissingEnvError
// naming every one that is empty.
func requireEnv(src Source, names []string) ([]string, error) {
	values := make([]string, len(names))
	var missing []string
	for i, name := range names {
		values[i] = strings.TrimSpace(src.GetString(name))
		if values[i] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingEnvError{Names: missing}
	}
	return values, nil
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
