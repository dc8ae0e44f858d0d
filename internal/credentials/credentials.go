// Package credentials reads Google service-account key files and renders the
// two values the sheet-write endpoint needs as dotenv lines.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrInvalidJSON   = errors.New("invalid JSON")
	ErrMissingFields = errors.New("invalid service account file: missing client_email or private_key")
)

const (
	EnvClientEmail = "GOOGLE_SHEETS_CLIENT_EMAIL"
	EnvPrivateKey  = "GOOGLE_SHEETS_PRIVATE_KEY"
)

// ServiceAccount holds the fields of a service-account key file that are
// used for JWT authentication. Other fields are ignored.
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadFile reads and validates a service-account key file.
func LoadFile(path string) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a service-account key and checks both required fields.
func Parse(data []byte) (*ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, ErrMissingFields
	}
	return &sa, nil
}

// EnvLines returns the dotenv assignments for sa. The private key is quoted
// and its line breaks are written as literal \n.
func (sa *ServiceAccount) EnvLines() []string {
	return []string{
		EnvClientEmail + "=" + sa.ClientEmail,
		EnvPrivateKey + `="` + EscapePrivateKey(sa.PrivateKey) + `"`,
	}
}

// EscapePrivateKey turns real line breaks into the two-character sequence \n.
func EscapePrivateKey(key string) string {
	return strings.ReplaceAll(key, "\n", `\n`)
}

// UnescapePrivateKey reverses EscapePrivateKey. Keys that already contain
// real line breaks pass through unchanged.
func UnescapePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
