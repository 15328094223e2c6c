package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/mjfashion/billdesk/internal/httpclient"
)

// MockHTTPClient implements a mock HTTP client for testing.
// Responses are matched on method and url suffix; every request is recorded.
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []*httpclient.Request
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

func routeKey(method, path string) string {
	return method + " " + path
}

// RegisterResponse registers a mock response for a method and url suffix
func (m *MockHTTPClient) RegisterResponse(method, path string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[routeKey(method, path)] = resp
}

// RegisterJSONResponse is a helper to register a json encoded body
func (m *MockHTTPClient) RegisterJSONResponse(method, path string, status int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	m.RegisterResponse(method, path, MockResponse{
		StatusCode: status,
		Body:       raw,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
}

// Send implements the httpclient.Client interface.
// Error statuses are turned into errors the same way the real client does.
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matchedResponse MockResponse
	var found bool
	for route, resp := range m.routes {
		method, path, _ := strings.Cut(route, " ")
		if method == req.Method && strings.HasSuffix(req.URL, path) {
			matchedResponse = resp
			found = true
			break
		}
	}

	if !found {
		matchedResponse = MockResponse{
			StatusCode: http.StatusNotFound,
			Body:       []byte(`{"message":"Not Found"}`),
		}
	}

	if matchedResponse.StatusCode >= http.StatusBadRequest {
		return nil, httpclient.Wrap(httpclient.NewError(matchedResponse.StatusCode, matchedResponse.Body))
	}

	headers := matchedResponse.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	return &httpclient.Response{
		StatusCode: matchedResponse.StatusCode,
		Body:       matchedResponse.Body,
		Headers:    headers,
	}, nil
}

// Requests returns the requests sent so far
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*httpclient.Request(nil), m.requests...)
}

// LastRequest returns the most recent request or nil
func (m *MockHTTPClient) LastRequest() *httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.requests = nil
}
