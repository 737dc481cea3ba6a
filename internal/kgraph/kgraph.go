// Package kgraph queries the Google Knowledge Graph Search API.
package kgraph

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/claimcheck/internal/extract"
	"github.com/ppiankov/claimcheck/internal/fetch"
)

// ErrNoResults is returned when the search yields no entity
var ErrNoResults = errors.New("no knowledge graph results")

// EntityResult is the first entity returned for a query
type EntityResult struct {
	Name           string
	Description    string // detailed description body, plain text
	DescriptionURL string
}

// Client calls the knowledge graph search API
type Client struct {
	fetcher *fetch.Fetcher
	apiKey  string
	baseURL string
}

type searchResponse struct {
	ItemListElement []struct {
		Result struct {
			ID                  string `json:"@id"`
			Name                string `json:"name"`
			Description         string `json:"description"`
			DetailedDescription struct {
				ArticleBody string `json:"articleBody"`
				URL         string `json:"url"`
				License     string `json:"license"`
			} `json:"detailedDescription"`
		} `json:"result"`
		ResultScore float64 `json:"resultScore"`
	} `json:"itemListElement"`
}

// NewClient creates a knowledge graph client
func NewClient(fetcher *fetch.Fetcher, apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("knowledge graph API key is required")
	}
	if baseURL == "" {
		baseURL = "https://kgsearch.googleapis.com/v1"
	}

	return &Client{
		fetcher: fetcher,
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Lookup searches for entity and returns the top result
func (c *Client) Lookup(ctx context.Context, entity string) (*EntityResult, error) {
	query := url.Values{}
	query.Set("query", entity)
	query.Set("key", c.apiKey)
	query.Set("limit", "1")

	var resp searchResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/entities:search", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("knowledge graph search: %w", err)
	}

	if len(resp.ItemListElement) == 0 {
		return nil, ErrNoResults
	}

	result := resp.ItemListElement[0].Result
	return &EntityResult{
		Name:           result.Name,
		Description:    extract.PlainText(result.DetailedDescription.ArticleBody),
		DescriptionURL: result.DetailedDescription.URL,
	}, nil
}
