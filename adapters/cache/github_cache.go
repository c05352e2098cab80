// Package cache decorates upstream sources with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/github"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const githubKeyPrefix = "github:repos:"

type cachedRepoSource struct {
	next   github.RepoSource
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewGitHubCache caches successful listings for ttl. Redis failures fall through to next.
func NewGitHubCache(next github.RepoSource, rdb *redis.Client, ttl time.Duration, log logger.Logger) github.RepoSource {
	return &cachedRepoSource{next: next, rdb: rdb, ttl: ttl, logger: log}
}

func GitHubKey(username string) string {
	return githubKeyPrefix + strings.ToLower(username)
}

func (c *cachedRepoSource) ListUserRepos(ctx context.Context, username string) ([]github.Repo, error) {
	key := GitHubKey(username)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var repos []github.Repo
		if err := json.Unmarshal(raw, &repos); err == nil {
			return repos, nil
		}
		c.logger.Warn("Discarding unreadable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Redis read failed, calling GitHub directly", zap.String("key", key), zap.Error(err))
	}

	repos, err := c.next.ListUserRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(repos)
	if err != nil {
		c.logger.Warn("Failed to encode repos for cache", zap.String("key", key), zap.Error(err))
		return repos, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis write failed", zap.String("key", key), zap.Error(err))
	}
	return repos, nil
}
