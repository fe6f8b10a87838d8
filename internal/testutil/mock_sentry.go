// Package testutil provides testing utilities for the issuegaze client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for one mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockSentry is a configurable mock Sentry API server for testing.
type MockSentry struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
	cursorsSeen       []string
}

// NewMockSentry creates a new mock server. Paths without a configured
// handler answer 404 with a plain "not found" body.
func NewMockSentry() *MockSentry {
	mock := &MockSentry{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.cursorsSeen = append(mock.cursorsSeen, r.URL.Query().Get("cursor"))
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "not found")
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockSentry) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockSentry) Close() {
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockSentry) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	m.cursorsSeen = nil
}

// CursorsSeen returns the cursor query parameter of every request received,
// in order ("" for requests without one).
func (m *MockSentry) CursorsSeen() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.cursorsSeen))
	copy(out, m.cursorsSeen)
	return out
}

// GetRequestCount returns the number of requests received.
func (m *MockSentry) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// SetHandler sets a custom handler for a specific path.
func (m *MockSentry) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockSentry) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		writeMockResponse(w, resp)
	})
}

// SetResponseSequence configures a path to answer with each response in
// turn; once the sequence is exhausted the last response repeats.
func (m *MockSentry) SetResponseSequence(path string, responses []MockResponse) {
	var mu sync.Mutex
	index := 0

	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		resp := responses[index]
		if index < len(responses)-1 {
			index++
		}
		mu.Unlock()

		writeMockResponse(w, resp)
	})
}

// SetPagedResponse configures a path that serves one JSON body per cursor
// value, keyed by the cursor query parameter ("" selects the first page).
// Each page's link header is taken from the pages map as given.
func (m *MockSentry) SetPagedResponse(path string, pages map[string]MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("cursor")
		resp, ok := pages[cursor]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "unknown cursor %q", cursor)
			return
		}
		writeMockResponse(w, resp)
	})
}

func writeMockResponse(w http.ResponseWriter, resp MockResponse) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// LinkHeader builds a Sentry-style link header with a next relation, and
// optionally a previous relation when prevCursor is non-empty.
func LinkHeader(prevCursor string, prevResults bool, nextCursor string, nextResults bool) string {
	next := fmt.Sprintf(`<http://mock/api/0/?cursor=%s>; rel="next"; results="%t"; cursor="%s"`,
		nextCursor, nextResults, nextCursor)
	if prevCursor == "" {
		return next
	}
	prev := fmt.Sprintf(`<http://mock/api/0/?cursor=%s>; rel="previous"; results="%t"; cursor="%s"`,
		prevCursor, prevResults, prevCursor)
	return prev + ", " + next
}

// RateLimitHeaders builds the x-sentry-rate-limit-* header set.
func RateLimitHeaders(remaining, limit int, resetAt time.Time) map[string]string {
	return map[string]string{
		"x-sentry-rate-limit-remaining": strconv.Itoa(remaining),
		"x-sentry-rate-limit-limit":     strconv.Itoa(limit),
		"x-sentry-rate-limit-reset":     strconv.FormatInt(resetAt.Unix(), 10),
	}
}
