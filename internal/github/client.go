// File: internal/github/client.go
// Package github fetches public repository listings for profile pages.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devlink_backend/internal/common"
	"devlink_backend/internal/config"

	"go.uber.org/zap"
)

// RepoSummary is the subset of the GitHub repository payload surfaced
// to clients.
type RepoSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// RepoFetcher looks up a user's most recent public repositories.
type RepoFetcher interface {
	FetchRepos(ctx context.Context, username string) ([]RepoSummary, error)
}

// Client talks to the GitHub REST API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	logger       *zap.Logger
}

// NewClient creates a GitHub API client from application configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	timeout := cfg.GithubRequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      cfg.GithubAPIBaseURL,
		clientID:     cfg.GithubClientID,
		clientSecret: cfg.GithubClientSecret,
		logger:       logger,
	}
}

// FetchRepos returns the user's five most recently created public
// repositories. Any non-OK upstream answer, including rate limiting,
// is reported as the user not being found.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]RepoSummary, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GitHub request: %w", err)
	}

	q := req.URL.Query()
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" && c.clientSecret != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GitHub request failed", zap.Error(err), zap.String("username", username))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not reach GitHub.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("GitHub returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("username", username),
		)
		return nil, common.ErrNotFound.WithDetails("No Github profile found.")
	}

	var repos []RepoSummary
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		c.logger.Error("Failed to decode GitHub response", zap.Error(err), zap.String("username", username))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not reach GitHub.")
	}
	return repos, nil
}
