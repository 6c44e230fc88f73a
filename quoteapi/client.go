// Package quoteapi wraps the public movie quote corpus behind the mesh-wide
// search policy: substring matching over the full corpus first, a small
// random sample as fallback, hard result truncation, and failures degraded
// to structured empty results so a quote outage never fails a task.
package quoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://quoteapi.pythonanywhere.com"

	// maxQuotes caps every returned result set.
	maxQuotes = 5
	// maxRandomQuotes caps the fallback sample taken from the random endpoint.
	maxRandomQuotes = 3
)

// Quote is one corpus entry.
type Quote struct {
	Quote      string `json:"quote,omitempty"`
	Author     string `json:"author,omitempty"`
	MovieTitle string `json:"movie_title,omitempty"`
	ActorName  string `json:"actor_name,omitempty"`
	Year       string `json:"year,omitempty"`
}

// SearchResult is the shaped outcome of a quote search. TotalFound counts
// the matches of whichever stage produced results before truncation to
// maxQuotes; Error is set instead of failing when the corpus is unreachable.
type SearchResult struct {
	Query      string  `json:"query"`
	Quotes     []Quote `json:"quotes"`
	TotalFound int     `json:"total_found"`
	Error      string  `json:"error,omitempty"`
}

// corpusResponse mirrors the API's envelope: {"Quotes": [[...]]}.
type corpusResponse struct {
	Quotes [][]Quote `json:"Quotes"`
}

// Options configure the quote client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches and searches the quote corpus. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client with optional overrides.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{baseURL: opts.BaseURL, httpClient: opts.HTTPClient}
}

// Search applies the two-stage policy for a movie title or actor name query.
// It never returns an error: corpus failures yield an empty result with the
// failure description embedded.
func (c *Client) Search(ctx context.Context, query string) SearchResult {
	all, err := c.fetch(ctx, "/quotes/")
	if err != nil {
		return SearchResult{
			Query:      query,
			Quotes:     []Quote{},
			TotalFound: 0,
			Error:      fmt.Sprintf("Failed to fetch quotes: %s", err.Error()),
		}
	}

	relevant := filterQuotes(all, query)

	// No substring matches: fall back to a small random sample. A failing
	// random endpoint leaves the result empty rather than erroring.
	if len(relevant) == 0 {
		if random, err := c.fetch(ctx, "/random"); err == nil {
			if len(random) > maxRandomQuotes {
				random = random[:maxRandomQuotes]
			}
			relevant = random
		}
	}

	total := len(relevant)
	if len(relevant) > maxQuotes {
		relevant = relevant[:maxQuotes]
	}
	return SearchResult{Query: query, Quotes: relevant, TotalFound: total}
}

// filterQuotes keeps entries whose movie title, actor name or author
// case-insensitively contains the query substring.
func filterQuotes(quotes []Quote, query string) []Quote {
	term := strings.ToLower(query)
	matched := []Quote{}
	for _, q := range quotes {
		if (q.MovieTitle != "" && strings.Contains(strings.ToLower(q.MovieTitle), term)) ||
			(q.ActorName != "" && strings.Contains(strings.ToLower(q.ActorName), term)) ||
			(q.Author != "" && strings.Contains(strings.ToLower(q.Author), term)) {
			matched = append(matched, q)
		}
	}
	return matched
}

func (c *Client) fetch(ctx context.Context, path string) ([]Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var body corpusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}
	// The API nests the actual entries one array deep.
	if len(body.Quotes) == 0 {
		return nil, nil
	}
	return body.Quotes[0], nil
}
