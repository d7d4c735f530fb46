package ebay_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/social-post/internal/ebay"
)

func TestFileTokenStore_SaveRestrictsPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := ebay.NewFileTokenStore(path)

	rec := &ebay.TokenRecord{
		AccessToken:           "access",
		RefreshToken:          "refresh",
		ExpiresIn:             7200,
		RefreshTokenExpiresIn: 47304000,
		TokenType:             "User Access Token",
		SavedAt:               1700000000.5,
	}
	require.NoError(t, store.Save(rec))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestFileTokenStore_TightensExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	store := ebay.NewFileTokenStore(path)
	require.NoError(t, store.Save(&ebay.TokenRecord{AccessToken: "a"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileTokenStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := ebay.NewFileTokenStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := store.Load()
	require.ErrorIs(t, err, ebay.ErrNoTokens)
}

func TestFileTokenStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := ebay.NewFileTokenStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing token file")
}

func TestFileTokenStore_ReadsLegacyRecord(t *testing.T) {
	t.Parallel()

	// Records written by earlier tooling carry extra fields and a float
	// timestamp.
	path := filepath.Join(t.TempDir(), "tokens.json")
	legacy := `{
  "access_token": "v^1.1#i^1",
  "expires_in": 7200,
  "refresh_token": "v^1.1#r^1",
  "refresh_token_expires_in": 47304000,
  "token_type": "User Access Token",
  "saved_at": 1712345678.123456
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	rec, err := ebay.NewFileTokenStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "v^1.1#i^1", rec.AccessToken)
	assert.Equal(t, "v^1.1#r^1", rec.RefreshToken)
	assert.InDelta(t, 1712345678.123456, rec.SavedAt, 1e-6)
}

func TestTokenRecord_ExpiresInOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7200, (&ebay.TokenRecord{}).ExpiresInOrDefault())
	assert.Equal(t, 3600, (&ebay.TokenRecord{ExpiresIn: 3600}).ExpiresInOrDefault())
}
