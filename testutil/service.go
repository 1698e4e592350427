package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/restclient/discovery"
)

// Recorded is a request received by a Service.
type Recorded struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// Service is a fake HTTP service registered under a resource name.
type Service struct {
	Name   string
	Server *httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// NewService starts a fake service that records every request before
// passing it to handler. It is closed when the test ends.
func NewService(t testing.TB, name string, handler http.Handler) *Service {
	t.Helper()
	s := &Service{Name: name}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   string(body),
		})
		s.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Server.Close)
	return s
}

// URL returns the base URL of the service.
func (s *Service) URL() string {
	return s.Server.URL
}

// Requests returns a copy of the recorded requests.
func (s *Service) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Provider returns a discovery.Provider that knows only this service.
func (s *Service) Provider() discovery.Provider {
	return Services(s)
}

// Services returns a discovery.Provider resolving each service by name,
// case-insensitively, for the rest service type.
func Services(services ...*Service) discovery.Provider {
	return discovery.ProviderFunc(func(_ context.Context, name, serviceType string) (string, error) {
		if serviceType != discovery.ServiceTypeREST {
			return "", nil
		}
		for _, s := range services {
			if strings.EqualFold(s.Name, name) {
				return s.URL(), nil
			}
		}
		return "", nil
	})
}

// JSON returns a handler that answers with status and a JSON body.
func JSON(status int, body string) http.Handler {
	return Respond(status, "application/json", body)
}

// Respond returns a handler that answers with status, content type and body.
func Respond(status int, contentType, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}
