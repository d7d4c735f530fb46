package ebay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNoTokens is returned when no token file exists yet.
var ErrNoTokens = errors.New("no eBay tokens found, run `ebay-list auth` first")

const defaultExpiresIn = 7200

// TokenRecord is the persisted user token pair. SavedAt is the acquisition
// time in Unix seconds.
type TokenRecord struct {
	AccessToken           string  `json:"access_token"`
	RefreshToken          string  `json:"refresh_token,omitempty"`
	ExpiresIn             int     `json:"expires_in,omitempty"`
	RefreshTokenExpiresIn int     `json:"refresh_token_expires_in,omitempty"`
	TokenType             string  `json:"token_type,omitempty"`
	SavedAt               float64 `json:"saved_at"`
}

// ExpiresInOrDefault returns ExpiresIn, or eBay's 7200 second default when
// the record carries none.
func (r *TokenRecord) ExpiresInOrDefault() int {
	if r.ExpiresIn <= 0 {
		return defaultExpiresIn
	}
	return r.ExpiresIn
}

// NeedsRefresh reports whether the access token is inside its final five
// minutes (or past them) at now. The exact boundary does not refresh.
func (r *TokenRecord) NeedsRefresh(now time.Time) bool {
	elapsed := unixSeconds(now) - r.SavedAt
	return elapsed > float64(r.ExpiresInOrDefault()-int(refreshBuffer/time.Second))
}

// TokenStore persists a TokenRecord.
type TokenStore interface {
	Load() (*TokenRecord, error)
	Save(rec *TokenRecord) error
}

// FileTokenStore keeps the token record as JSON in a single owner-only file.
// Concurrent processes are not coordinated.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store backed by path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path returns the backing file path.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Load reads the record. It returns ErrNoTokens when the file is absent.
func (s *FileTokenStore) Load() (*TokenRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoTokens
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var rec TokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", s.path, err)
	}
	return &rec, nil
}

// Save writes the record with 0600 permissions, replacing any previous one.
func (s *FileTokenStore) Save(rec *TokenRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating token directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("restricting token file: %w", err)
	}
	return nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}
