package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/leading2lean/lesgo/internal/testutil"
)

func testCredentials(t *testing.T) *Credentials {
	t.Helper()
	creds, err := NewCredentials("test-api-key")
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}
	return creds
}

func testClient(t *testing.T, mock *testutil.MockAPI) *Client {
	t.Helper()

	cfg := DefaultConfig(mock.URL(), testCredentials(t))
	cfg.Retry = RetryConfig{
		MaxAttempts:       2,
		InitialBackoff:    1 * time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	creds := testCredentials(t)

	released := testCredentials(t)
	released.Release()

	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			config:      DefaultConfig("https://example.leading2lean.com", creds),
			expectError: false,
		},
		{
			name:        "missing base URL",
			config:      Config{Credentials: creds},
			expectError: true,
			errorMsg:    "base URL is required",
		},
		{
			name:        "missing credentials",
			config:      Config{BaseURL: "https://example.leading2lean.com"},
			expectError: true,
			errorMsg:    "credentials are required",
		},
		{
			name: "released credentials",
			config: Config{
				BaseURL:     "https://example.leading2lean.com",
				Credentials: released,
			},
			expectError: true,
			errorMsg:    "credentials released",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got nil")
					return
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
					return
				}
				if client == nil {
					t.Error("Client is nil")
				}
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(Config{
		BaseURL:     "https://example.leading2lean.com",
		Credentials: testCredentials(t),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.config.UserAgent == "" {
		t.Error("UserAgent should have a default")
	}
	if c.config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", c.config.Timeout)
	}
	if c.config.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", c.config.Retry.MaxAttempts)
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetCollection("sites", []map[string]any{{"id": "1"}})

	c := testClient(t, mock)

	var out []map[string]any
	if err := c.GetJSON(context.Background(), "sites", nil, &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}

	if got := mock.LastHeader.Get(APIKeyHeader); got != "test-api-key" {
		t.Errorf("%s header = %q, want the API key", APIKeyHeader, got)
	}
	if got := mock.LastHeader.Get("User-Agent"); got != "lesgo/0.1.0" {
		t.Errorf("User-Agent = %q", got)
	}
	if mock.LastHeader.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if got := mock.LastHeader.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q", got)
	}
}

func TestClient_PostForm(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.Handle("dispatches/open", func(w http.ResponseWriter, r *http.Request) {
		mock.WriteEnvelope(w, map[string]any{"id": 99, "dispatchnumber": "1234"})
	})

	c := testClient(t, mock)

	form := url.Values{"machinecode": {"CNC-7"}, "description": {"spindle jam"}}
	var out map[string]any
	if err := c.PostForm(context.Background(), "dispatches/open", form, &out); err != nil {
		t.Fatalf("PostForm() error = %v", err)
	}

	if got := mock.LastForm.Get("machinecode"); got != "CNC-7" {
		t.Errorf("posted machinecode = %q, want CNC-7", got)
	}
	if got := mock.LastHeader.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", got)
	}
	if out["dispatchnumber"] != "1234" {
		t.Errorf("decoded dispatchnumber = %v", out["dispatchnumber"])
	}
}

func TestClient_EnvelopeFailure(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.Handle("sites", func(w http.ResponseWriter, r *http.Request) {
		mock.WriteError(w, "invalid api key")
	})

	c := testClient(t, mock)

	err := c.GetJSON(context.Background(), "sites", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.ErrorClass != ErrorClassClient {
		t.Errorf("ErrorClass = %v, want client", apiErr.ErrorClass)
	}
	if apiErr.Message != "invalid api key" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestClient_ServerErrorRetriedThenExhausted(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.Handle("sites", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := testClient(t, mock)

	err := c.GetJSON(context.Background(), "sites", nil, nil)
	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("error = %v, want ErrRetryExhausted", err)
	}
	if mock.RequestCount != 2 {
		t.Errorf("request count = %d, want 2 (MaxAttempts)", mock.RequestCount)
	}
}

func TestClient_NotFoundNotRetried(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	c := testClient(t, mock)

	err := c.GetJSON(context.Background(), "nosuchresource", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if mock.RequestCount != 1 {
		t.Errorf("request count = %d, want 1 (client errors are not retried)", mock.RequestCount)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.Handle("sites", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout page</html>"))
	})

	c := testClient(t, mock)

	err := c.GetJSON(context.Background(), "sites", nil, nil)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestClient_FetchPage(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.StringlySuccess = true // exercise the boundary parsing, too

	items := make([]map[string]any, 5)
	for i := range items {
		items[i] = map[string]any{"id": i + 1}
	}
	mock.SetCollection("lines", items)

	c := testClient(t, mock)

	page, err := c.FetchPage(context.Background(), "lines", url.Values{"site": {"1"}}, 2, 2)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page len = %d, want 2", len(page))
	}

	offsets := mock.ResourceOffsets("lines")
	if len(offsets) != 1 || offsets[0] != 2 {
		t.Errorf("recorded offsets = %v, want [2]", offsets)
	}
}

func TestClient_CloseReleasesCredentials(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetCollection("sites", []map[string]any{})

	creds := testCredentials(t)
	cfg := DefaultConfig(mock.URL(), creds)
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !creds.Released() {
		t.Error("Close() should release the credentials")
	}

	err = c.GetJSON(context.Background(), "sites", nil, nil)
	if !errors.Is(err, ErrCredentialsReleased) {
		t.Errorf("GetJSON() after Close = %v, want ErrCredentialsReleased", err)
	}
}
