package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
)

func testConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:   5 * time.Second,
		UserAgent: "test-agent",
	}
}

func TestGetJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "eiffel tower" {
			t.Errorf("Expected q=eiffel tower, got %q", r.URL.Query().Get("q"))
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("Expected User-Agent test-agent, got %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("Expected X-Api-Key header, got %q", r.Header.Get("X-Api-Key"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"name":"ok"}`)
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig())

	var out struct {
		Name string `json:"name"`
	}
	header := http.Header{}
	header.Set("X-Api-Key", "secret")

	err := fetcher.GetJSON(context.Background(), server.URL, url.Values{"q": {"eiffel tower"}}, header, &out)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Name != "ok" {
		t.Errorf("Unexpected body: %+v", out)
	}
}

func TestGetJSON_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"status":"error","code":"apiKeyInvalid"}`)
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig())

	var out map[string]any
	err := fetcher.GetJSON(context.Background(), server.URL, nil, nil, &out)
	if err == nil {
		t.Fatal("Expected error for 401, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", statusErr.StatusCode)
	}
}

func TestGetJSON_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{malformed`)
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig())

	var out map[string]any
	if err := fetcher.GetJSON(context.Background(), server.URL, nil, nil, &out); err == nil {
		t.Fatal("Expected decode error, got nil")
	}
}

func TestGetJSON_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	fetcher := NewFetcher(cfg)

	var out map[string]any
	if err := fetcher.GetJSON(context.Background(), server.URL, nil, nil, &out); err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
}

func TestGetJSON_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"name":"this body is longer than the limit"}`)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 10
	fetcher := NewFetcher(cfg)

	var out map[string]any
	if err := fetcher.GetJSON(context.Background(), server.URL, nil, nil, &out); err == nil {
		t.Fatal("Expected truncated body to fail decoding")
	}
}

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:8080", "http://secure-proxy:8443", "internal.local, .corp")

	req := httptest.NewRequest(http.MethodGet, "https://newsapi.org/v2/everything", nil)
	u, err := proxy(req)
	if err != nil || u == nil || u.Host != "secure-proxy:8443" {
		t.Errorf("Expected https proxy, got %v (%v)", u, err)
	}

	req = httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	u, err = proxy(req)
	if err != nil || u == nil || u.Host != "proxy:8080" {
		t.Errorf("Expected http proxy, got %v (%v)", u, err)
	}

	req = httptest.NewRequest(http.MethodGet, "http://api.corp/x", nil)
	u, _ = proxy(req)
	if u != nil {
		t.Errorf("Expected no proxy for no_proxy host, got %v", u)
	}

	req = httptest.NewRequest(http.MethodGet, "http://internal.local/x", nil)
	u, _ = proxy(req)
	if u != nil {
		t.Errorf("Expected no proxy for exact no_proxy host, got %v", u)
	}
}
