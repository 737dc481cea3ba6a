// Package news queries the NewsAPI.org "everything" endpoint for recent
// articles about a claim's keywords.
package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/claimcheck/internal/fetch"
)

// PageSize is the number of articles requested per lookup
const PageSize = 3

// ErrNoArticles is returned when the API answers with an empty result set
var ErrNoArticles = errors.New("no articles found")

// Article is a single news search hit
type Article struct {
	SourceName  string
	Title       string
	URL         string
	PublishedAt string
}

// Client calls the news search API
type Client struct {
	fetcher *fetch.Fetcher
	apiKey  string
	baseURL string
}

type everythingResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// NewClient creates a news client
func NewClient(fetcher *fetch.Fetcher, apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("news API key is required")
	}
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}

	return &Client{
		fetcher: fetcher,
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// BuildQuery joins keywords into a single OR query
func BuildQuery(keywords []string) string {
	return "(" + strings.Join(keywords, " OR ") + ")"
}

// Lookup returns up to PageSize English articles for the keywords, newest first
func (c *Client) Lookup(ctx context.Context, keywords []string) ([]Article, error) {
	if len(keywords) == 0 {
		return nil, ErrNoArticles
	}

	query := url.Values{}
	query.Set("q", BuildQuery(keywords))
	query.Set("language", "en")
	query.Set("sortBy", "publishedAt")
	query.Set("pageSize", strconv.Itoa(PageSize))

	header := http.Header{}
	header.Set("X-Api-Key", c.apiKey)

	var resp everythingResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/everything", query, header, &resp); err != nil {
		return nil, fmt.Errorf("news search: %w", err)
	}

	if len(resp.Articles) == 0 {
		return nil, ErrNoArticles
	}

	articles := make([]Article, 0, PageSize)
	for i, a := range resp.Articles {
		if i >= PageSize {
			break
		}
		articles = append(articles, Article{
			SourceName:  a.Source.Name,
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}

	return articles, nil
}
