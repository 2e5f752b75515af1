// Package session holds the one authenticated identity for the life of
// the process and keeps it consistent with the durable token file.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TokenFile is the durable credential cell: a single well-known slot
// under the user config dir. The store is its only writer; the API
// client reads it through Token on every outgoing request.
type TokenFile struct {
	Path string
}

type storedToken struct {
	Token string `json:"token"`
}

func NewTokenFile() (*TokenFile, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(configDir, "EventGallery", "auth_token.json")

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return &TokenFile{Path: path}, nil
}

func (t *TokenFile) Save(token string) error {
	data, err := json.MarshalIndent(storedToken{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.Path, data, 0600)
}

func (t *TokenFile) Load() (string, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return "", nil // no file yet
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", err
	}
	return stored.Token, nil
}

func (t *TokenFile) Remove() error {
	if _, err := os.Stat(t.Path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(t.Path)
}

// Token implements client.TokenSource. Unreadable or missing files
// read as no credential.
func (t *TokenFile) Token() string {
	token, err := t.Load()
	if err != nil {
		return ""
	}
	return token
}
