// Package testutil provides testing utilities for the wallhaven client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock wallhaven endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockWallhaven is a configurable mock wallhaven API server for testing.
// Handlers are registered per URL path, for example "/api/v1/search".
type MockWallhaven struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount int
	Requests     []*url.URL
	LastHeader   http.Header
}

// NewMockWallhaven creates a new mock wallhaven server.
func NewMockWallhaven() *MockWallhaven {
	mock := &MockWallhaven{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		u := *r.URL
		mock.Requests = append(mock.Requests, &u)
		mock.LastHeader = r.Header.Clone()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Nothing here"}`))
	}))

	return mock
}

// URL returns the API base URL of the mock server.
func (m *MockWallhaven) URL() string {
	return m.server.URL + "/api/v1"
}

// Close shuts down the mock server.
func (m *MockWallhaven) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockWallhaven) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.Requests = nil
	m.LastHeader = nil
}

// SetHandler sets a custom handler for an API path such as "/search".
func (m *MockWallhaven) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers["/api/v1"+path] = handler
}

// SetResponse configures a fixed response for an API path.
func (m *MockWallhaven) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			_, _ = w.Write([]byte(resp.Body))
		}
	})
}

// SetPages serves pages[i] for page i+1 of a paginated listing at path.
// Pages past the end are served empty.
func (m *MockWallhaven) SetPages(path string, pages ...[]string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			_, _ = fmt.Sscanf(p, "%d", &page)
		}
		var ids []string
		if page >= 1 && page <= len(pages) {
			ids = pages[page-1]
		}
		total := 0
		for _, p := range pages {
			total += len(p)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ListPage(ids, page, len(pages), total)))
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockWallhaven) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetRequests returns the URLs of all requests made to the server.
func (m *MockWallhaven) GetRequests() []*url.URL {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*url.URL(nil), m.Requests...)
}

// GetLastHeader returns the headers of the latest request.
func (m *MockWallhaven) GetLastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastHeader
}

// ListPage renders a wallpaper listing envelope with one minimal wallpaper per id.
func ListPage(ids []string, currentPage, lastPage, total int) string {
	data := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		data = append(data, map[string]any{
			"id":         id,
			"url":        "https://wallhaven.cc/w/" + id,
			"short_url":  "https://whvn.cc/" + id,
			"purity":     "sfw",
			"category":   "general",
			"resolution": "1920x1080",
			"path":       "https://w.wallhaven.cc/full/" + id[:min(2, len(id))] + "/wallhaven-" + id + ".jpg",
		})
	}
	body, _ := json.Marshal(map[string]any{
		"data": data,
		"meta": map[string]any{
			"current_page": currentPage,
			"last_page":    lastPage,
			"per_page":     24,
			"total":        total,
			"query":        nil,
			"seed":         nil,
		},
	})
	return string(body)
}

// NewOKResponse creates a 200 OK JSON response.
func NewOKResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewStatusResponse creates an error response with the given status.
func NewStatusResponse(status int) MockResponse {
	return MockResponse{
		StatusCode: status,
		Body:       fmt.Sprintf(`{"error":%q}`, http.StatusText(status)),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return NewStatusResponse(http.StatusTooManyRequests)
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return NewStatusResponse(http.StatusInternalServerError)
}
