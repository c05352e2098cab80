// Package github talks to the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/config"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/github"
	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const serviceName = "GitHub"

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(cfg config.Config, log logger.Logger) *Client {
	timeout := cfg.GitHub.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.GitHub.BaseURL, "/"),
		token:   cfg.GitHub.Token,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

type apiRepo struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	Topics          []string  `json:"topics"`
}

// ListUserRepos fetches the most recently updated public repositories of username.
func (c *Client) ListUserRepos(ctx context.Context, username string) ([]github.Repo, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	q.Set("per_page", strconv.Itoa(github.MaxRepos))
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.NewUpstream(serviceName, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "myprofile-api")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, apperror.NewUpstream(serviceName, "request timed out", err)
		}
		return nil, apperror.NewUpstream(serviceName, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("GitHub returned non-success status",
			zap.String("username", username),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, apperror.NewUpstream(serviceName, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var payload []apiRepo
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperror.NewUpstream(serviceName, "failed to decode response", err)
	}

	repos := make([]github.Repo, len(payload))
	for i, r := range payload {
		repos[i] = github.Repo{
			Name:            r.Name,
			Description:     r.Description,
			HTMLURL:         r.HTMLURL,
			Language:        r.Language,
			StargazersCount: r.StargazersCount,
			ForksCount:      r.ForksCount,
			UpdatedAt:       r.UpdatedAt,
			Topics:          r.Topics,
		}
	}
	return github.Latest(repos), nil
}
