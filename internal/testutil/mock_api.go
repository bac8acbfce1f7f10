// Package testutil provides testing utilities for the lesgo client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// MockAPI is a configurable mock API server for testing. It serves the
// `{"success": ..., "data": ...}` envelope and slices registered collections
// with real limit/offset semantics so pagination tests can assert exact
// request sequences.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	items    map[string][]map[string]any
	handlers map[string]http.HandlerFunc

	// StringlySuccess emits `"success": "true"` as a string instead of a
	// real boolean, as some deployments do.
	StringlySuccess bool

	// Tracking
	RequestCount int
	Offsets      map[string][]int
	LastForm     url.Values
	LastHeader   http.Header
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		items:    make(map[string][]map[string]any),
		handlers: make(map[string]http.HandlerFunc),
		Offsets:  make(map[string][]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resource := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/1.0"), "/")

		mock.mu.Lock()
		mock.RequestCount++
		mock.LastHeader = r.Header.Clone()
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				mock.LastForm = r.PostForm
			}
		}
		if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
			mock.Offsets[resource] = append(mock.Offsets[resource], offset)
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[resource]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r, resource)
	}))

	return mock
}

// defaultHandler serves a registered collection with limit/offset slicing.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request, resource string) {
	m.mu.RLock()
	items, exists := m.items[resource]
	m.mu.RUnlock()

	if !exists {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"success": false, "error": "unknown resource %s"}`, resource)
		return
	}

	limit := len(items)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"success": false, "error": "bad limit"}`)
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}

	page := []map[string]any{}
	if offset < len(items) {
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		page = items[offset:end]
	}

	m.WriteEnvelope(w, page)
}

// SetCollection registers the dataset served for a resource.
func (m *MockAPI) SetCollection(resource string, items []map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[resource] = items
}

// Handle registers a custom handler for a resource path (e.g. "dispatches/open").
func (m *MockAPI) Handle(resource string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[strings.Trim(resource, "/")] = handler
}

// WriteEnvelope writes a success envelope around data.
func (m *MockAPI) WriteEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	var success any = true
	if m.StringlySuccess {
		success = "true"
	}
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteError writes a success=false envelope with an error message.
func (m *MockAPI) WriteError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")

	var success any = false
	if m.StringlySuccess {
		success = "false"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"error":   msg,
	})
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// ResourceOffsets returns the recorded offset sequence for a resource.
func (m *MockAPI) ResourceOffsets(resource string) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.Offsets[strings.Trim(resource, "/")]...)
}
