package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/claimcheck/internal/fetch"
	"github.com/ppiankov/claimcheck/internal/model"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	fetcher := fetch.NewFetcher(model.HTTPConfig{Timeout: 5 * time.Second})
	client, err := NewClient(fetcher, "test-key", baseURL)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestClient_Lookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/everything" {
			t.Errorf("Expected path /everything, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "(tesla OR stock)" {
			t.Errorf("Unexpected query: %q", q.Get("q"))
		}
		if q.Get("language") != "en" || q.Get("sortBy") != "publishedAt" || q.Get("pageSize") != "3" {
			t.Errorf("Unexpected parameters: %v", q)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("Expected X-Api-Key test-key, got %q", r.Header.Get("X-Api-Key"))
		}

		_, _ = fmt.Fprint(w, `{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"source": {"id": "reuters", "name": "Reuters"}, "title": "Tesla falls", "url": "https://reuters.com/a"},
				{"source": {"id": null, "name": "Bloomberg"}, "title": "EV stocks", "url": "https://bloomberg.com/b"}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	articles, err := client.Lookup(context.Background(), []string{"tesla", "stock"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].SourceName != "Reuters" || articles[0].URL != "https://reuters.com/a" {
		t.Errorf("Unexpected first article: %+v", articles[0])
	}
	if articles[1].SourceName != "Bloomberg" {
		t.Errorf("Unexpected second article: %+v", articles[1])
	}
}

func TestClient_Lookup_CapsAtPageSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status":"ok","articles":[
			{"source":{"name":"A"},"url":"https://a"},
			{"source":{"name":"B"},"url":"https://b"},
			{"source":{"name":"C"},"url":"https://c"},
			{"source":{"name":"D"},"url":"https://d"}
		]}`)
	}))
	defer server.Close()

	articles, err := newTestClient(t, server.URL).Lookup(context.Background(), []string{"x"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(articles) != PageSize {
		t.Errorf("Expected %d articles, got %d", PageSize, len(articles))
	}
}

func TestClient_Lookup_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status":"ok","totalResults":0,"articles":[]}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Lookup(context.Background(), []string{"nothing"})
	if !errors.Is(err, ErrNoArticles) {
		t.Errorf("Expected ErrNoArticles, got %v", err)
	}
}

func TestClient_Lookup_NoKeywords(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.Lookup(context.Background(), nil)
	if !errors.Is(err, ErrNoArticles) {
		t.Errorf("Expected ErrNoArticles for empty keywords, got %v", err)
	}
}

func TestClient_Lookup_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"status":"error","code":"rateLimited"}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Lookup(context.Background(), []string{"x"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected wrapped 429 StatusError, got %v", err)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(nil, "", ""); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestBuildQuery(t *testing.T) {
	if got := BuildQuery([]string{"a"}); got != "(a)" {
		t.Errorf("Unexpected query %q", got)
	}
	if got := BuildQuery([]string{"a", "b", "c"}); got != "(a OR b OR c)" {
		t.Errorf("Unexpected query %q", got)
	}
}
