package client

import (
	"fmt"
	"net/http"
	"sync"
)

// APIKeyHeader is the request header carrying the API key.
const APIKeyHeader = "X-API-Key"

// Credentials holds an API key with an explicit lifetime. The key is applied
// to outgoing requests by the client and can be released deterministically
// once no more requests will be made. A released credential rejects further
// use instead of silently sending an empty key.
type Credentials struct {
	mu       sync.Mutex
	key      string
	released bool
}

// NewCredentials creates credentials from an API key.
func NewCredentials(key string) (*Credentials, error) {
	if key == "" {
		return nil, fmt.Errorf("api key is required")
	}
	return &Credentials{key: key}, nil
}

// apply sets the API key header on a request.
func (c *Credentials) apply(req *http.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrCredentialsReleased
	}
	req.Header.Set(APIKeyHeader, c.key)
	return nil
}

// Release zeroes the stored key and marks the credentials as unusable.
// Safe to call more than once.
func (c *Credentials) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = ""
	c.released = true
}

// Released reports whether Release has been called.
func (c *Credentials) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}
