package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRedirectURL(t *testing.T) {
	tests := map[string]string{
		"urn:ietf:wg:oauth:2.0:oob":    "http://localhost:6789/oauth2callback",
		"http://localhost":             "http://localhost:6789",
		"http://127.0.0.1:9000/cb":     "http://127.0.0.1:6789/cb",
		"http://localhost:6789/cb":     "http://localhost:6789/cb",
		"https://example.com/callback": "https://example.com/callback",
	}
	for in, want := range tests {
		assert.Equal(t, want, redirectURL(in), in)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", TokenFile)
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, saveToken(path, tok))
	got, err := tokenFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, got.AccessToken)
	assert.Equal(t, tok.RefreshToken, got.RefreshToken)
	assert.True(t, tok.Expiry.Equal(got.Expiry))

	require.NoError(t, ResetToken(filepath.Dir(path)))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, ResetToken(filepath.Dir(path)))
}

func TestGetConfigMissingSecrets(t *testing.T) {
	_, err := GetConfig(t.TempDir(), Scopes)
	assert.Error(t, err)
}
