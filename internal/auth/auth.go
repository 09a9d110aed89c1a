// Package auth provides static API-key credentials for upstream listings APIs.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Header names used by the supported providers.
const (
	HeaderCoinMarketCap = "X-CMC_PRO_API_KEY"
	HeaderCoinGecko     = "x-cg-demo-api-key"
)

// Credentials holds a static API key and the header it is sent in.
type Credentials struct {
	Header string // Request header carrying the key
	Key    string // API key value
}

// LoadCredentials builds credentials from an inline key or a key file.
// An inline key takes precedence. Both empty yields nil credentials and no error,
// for providers that do not require a key.
func LoadCredentials(header, key, keyPath string) (*Credentials, error) {
	if header == "" {
		return nil, errors.New("API key header is required")
	}

	if key == "" && keyPath != "" {
		k, err := LoadKey(keyPath)
		if err != nil {
			return nil, fmt.Errorf("load api key: %w", err)
		}
		key = k
	}
	if key == "" {
		return nil, nil
	}

	return &Credentials{
		Header: header,
		Key:    key,
	}, nil
}

// LoadKey reads an API key from a file, trimming surrounding whitespace.
func LoadKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("key file %s is empty", path)
	}
	return key, nil
}

// Apply sets the key header on req. A nil receiver is a no-op.
func (c *Credentials) Apply(req *http.Request) {
	if c == nil || c.Key == "" {
		return
	}
	req.Header.Set(c.Header, c.Key)
}

// String masks the key for logging.
func (c *Credentials) String() string {
	if c == nil || c.Key == "" {
		return "none"
	}
	if len(c.Key) <= 4 {
		return c.Header + "=****"
	}
	return c.Header + "=****" + c.Key[len(c.Key)-4:]
}
