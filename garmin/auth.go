package garmin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTokenDir is the default token store location, shared with other
// Garmin Connect tooling.
const DefaultTokenDir = "~/.garminconnect"

// tokenFileName is the OAuth2 token file inside the token store directory.
const tokenFileName = "oauth2_token.json"

// Token is an OAuth2 access token for the Garmin Connect API.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

// Expired reports whether the token is past its expiry. Tokens with no
// recorded expiry are assumed valid.
func (t Token) Expired() bool {
	if t.ExpiresAt == 0 {
		return false
	}
	return time.Now().Unix() >= t.ExpiresAt
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// LoadToken locates an OAuth2 token. A non-empty raw token (typically from
// the GARMIN_OAUTH_TOKEN environment variable) wins; otherwise the token
// store directory is read. An empty dir falls back to DefaultTokenDir.
func LoadToken(raw, dir string) (Token, error) {
	if raw != "" {
		return Token{AccessToken: raw, TokenType: "Bearer"}, nil
	}

	if dir == "" {
		dir = DefaultTokenDir
	}
	path := filepath.Join(expandHome(dir), tokenFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Token{}, ErrNoToken
		}
		return Token{}, fmt.Errorf("garmin: reading token store: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, fmt.Errorf("garmin: parsing %s: %w", path, err)
	}
	if tok.AccessToken == "" {
		return Token{}, ErrNoToken
	}
	if tok.Expired() {
		return Token{}, ErrTokenExpired
	}
	return tok, nil
}

// SaveToken writes the token into the store directory, creating it if
// needed. The file is written with owner-only permissions.
func SaveToken(tok Token, dir string) error {
	if dir == "" {
		dir = DefaultTokenDir
	}
	dir = expandHome(dir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("garmin: creating token store: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("garmin: encoding token: %w", err)
	}
	path := filepath.Join(dir, tokenFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("garmin: writing token store: %w", err)
	}
	return nil
}
