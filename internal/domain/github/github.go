package github

import (
	"context"
	"sort"
	"time"
)

// MaxRepos caps how many repositories are shown for a user.
const MaxRepos = 10

type Repo struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	Topics          []string  `json:"topics"`
}

// RepoSource lists the public repositories of a user.
type RepoSource interface {
	ListUserRepos(ctx context.Context, username string) ([]Repo, error)
}

// Latest orders repos by most recent update and keeps at most MaxRepos.
func Latest(repos []Repo) []Repo {
	out := make([]Repo, len(repos))
	copy(out, repos)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > MaxRepos {
		out = out[:MaxRepos]
	}
	for i := range out {
		if out[i].Topics == nil {
			out[i].Topics = []string{}
		}
	}
	return out
}
