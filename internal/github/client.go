// Package github implements feed.Lister on top of the go-github REST client.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/gede-cahya/portfolio/internal/feed"
)

// Compile-time interface satisfaction check.
var _ feed.Lister = (*Client)(nil)

const lowRateLimit = 10

// Client lists public repositories through the GitHub REST API.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub client with the following transport stack:
//  1. oauth2 bearer token, only when token is non-empty
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. httpcache (ETag-based conditional request caching)
//
// Anonymous clients share GitHub's 60 requests/hour budget per IP, so the
// conditional requests matter most when no token is configured.
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := github_ratelimit.NewClient(cacheTransport)

	if token != "" {
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   httpClient.Transport,
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			},
		}
	}

	return &Client{gh: gh.NewClient(httpClient)}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// ListRepositories fetches a single page of the account's public repositories,
// most recently updated first. It does not follow pagination.
func (c *Client) ListRepositories(ctx context.Context, account string, perPage int) ([]feed.RemoteRepository, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort: "updated",
		ListOptions: gh.ListOptions{
			PerPage: perPage,
		},
	}

	repos, resp, err := c.gh.Repositories.ListByUser(ctx, account, opts)
	if err != nil {
		return nil, fmt.Errorf("listing repositories for %s: %w", account, err)
	}

	logRateLimit(resp, account, len(repos))

	result := make([]feed.RemoteRepository, 0, len(repos))
	for _, r := range repos {
		result = append(result, mapRepository(r))
	}

	return result, nil
}

func logRateLimit(resp *gh.Response, account string, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", "users/"+account+"/repos",
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < lowRateLimit {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// mapRepository converts a go-github Repository to a feed.RemoteRepository.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapRepository(r *gh.Repository) feed.RemoteRepository {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}

	return feed.RemoteRepository{
		Fork:        r.GetFork(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Topics:      topics,
		Homepage:    r.GetHomepage(),
		HTMLURL:     r.GetHTMLURL(),
		Stars:       r.GetStargazersCount(),
	}
}
