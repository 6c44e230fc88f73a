// Package tmdb is a small client for The Movie Database search API. Beyond
// fetching, it applies the mesh-wide shaping policy for movie and person
// records: relative image paths are rewritten to absolute URLs against a
// fixed image base and width so downstream consumers never see bare paths.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	// ImageBaseURL is the fixed base plus width segment prepended to
	// relative poster/backdrop/profile paths.
	ImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// Movie is one movie record of a search result. Pointer image paths keep
// the absent-vs-empty distinction: a missing path stays missing on re-encode.
type Movie struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title,omitempty"`
	Name         string   `json:"name,omitempty"`
	Overview     string   `json:"overview,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	VoteAverage  float64  `json:"vote_average,omitempty"`
	Popularity   float64  `json:"popularity,omitempty"`
	PosterPath   *string  `json:"poster_path,omitempty"`
	BackdropPath *string  `json:"backdrop_path,omitempty"`
	GenreIDs     []int64  `json:"genre_ids,omitempty"`
}

// Person is one person record of a search result, including the TMDB
// known_for sample of notable works.
type Person struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
	ProfilePath *string `json:"profile_path,omitempty"`
	KnownFor    []Movie `json:"known_for,omitempty"`
}

// MovieSearchResult is the shaped payload of a movie search.
type MovieSearchResult struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// PersonSearchResult is the shaped payload of a person search.
type PersonSearchResult struct {
	Page         int      `json:"page"`
	Results      []Person `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Options configure the TMDB client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the TMDB search endpoints. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a Client authenticating with the given API read token.
func NewClient(apiKey string, optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{baseURL: opts.BaseURL, apiKey: apiKey, httpClient: opts.HTTPClient}
}

// SearchMovies queries the movie search endpoint and rewrites image paths.
func (c *Client) SearchMovies(ctx context.Context, query string) (*MovieSearchResult, error) {
	var result MovieSearchResult
	if err := c.search(ctx, "movie", query, &result); err != nil {
		return nil, err
	}
	for i := range result.Results {
		rewriteMovieImages(&result.Results[i])
	}
	return &result, nil
}

// SearchPeople queries the person search endpoint and rewrites profile
// images plus the poster/backdrop paths of each known_for entry.
func (c *Client) SearchPeople(ctx context.Context, query string) (*PersonSearchResult, error) {
	var result PersonSearchResult
	if err := c.search(ctx, "person", query, &result); err != nil {
		return nil, err
	}
	for i := range result.Results {
		rewriteImagePath(result.Results[i].ProfilePath)
		for j := range result.Results[i].KnownFor {
			rewriteMovieImages(&result.Results[i].KnownFor[j])
		}
	}
	return &result, nil
}

func (c *Client) search(ctx context.Context, kind, query string, out any) error {
	endpoint := fmt.Sprintf("%s/search/%s?query=%s", c.baseURL, kind, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb responded with status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func rewriteMovieImages(m *Movie) {
	rewriteImagePath(m.PosterPath)
	rewriteImagePath(m.BackdropPath)
}

// rewriteImagePath prepends the fixed image base to relative paths in place.
// Absent (nil) and already absolute paths are left untouched.
func rewriteImagePath(p *string) {
	if p == nil || *p == "" || strings.HasPrefix(*p, "http") {
		return
	}
	*p = ImageBaseURL + *p
}
