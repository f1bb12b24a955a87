package user_client_cached

import (
	"context"
	"errors"
	"log/slog"
	"time"

	redis_cache "pubhub-publication-service/internal/cache/redis"
	user_client "pubhub-publication-service/internal/clients/user"
	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/metrics"
	"pubhub-publication-service/internal/model"
)

// Client decorates the identity-provider client with the redis user cache.
// Only user lookups are memoized; Authenticate always hits the provider so
// session revocation takes effect immediately.
type Client struct {
	inner     user_client.Client
	userCache *redis_cache.UserCache
	log       *logger.Logger
	metrics   metrics.MetricsProvider
}

func NewClient(
	inner user_client.Client,
	userCache *redis_cache.UserCache,
	log *logger.Logger,
	metrics metrics.MetricsProvider,
) user_client.Client {
	return &Client{
		inner:     inner,
		userCache: userCache,
		log:       log,
		metrics:   metrics,
	}
}

func (c *Client) Authenticate(ctx context.Context, token string) (*model.User, error) {
	user, err := c.inner.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if cacheErr := c.userCache.SetUser(ctx, user); cacheErr != nil {
		c.log.Warn("Failed to cache authenticated user",
			slog.String("user_id", user.ID),
			slog.String("error", cacheErr.Error()))
	}
	return user, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	start := time.Now()
	cached, err := c.userCache.GetUser(ctx, id)
	c.metrics.RecordCacheOperationDuration("user_get", time.Since(start))
	if err == nil {
		c.metrics.IncrementCacheHits()
		return cached, nil
	}
	if errors.Is(err, custom_errors.ErrCacheMiss) {
		c.metrics.IncrementCacheMisses()
	} else {
		c.log.Warn("Failed to get user from cache",
			slog.String("user_id", id),
			slog.String("error", err.Error()))
	}

	user, err := c.inner.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := c.userCache.SetUser(ctx, user); cacheErr != nil {
		c.log.Warn("Failed to cache user",
			slog.String("user_id", id),
			slog.String("error", cacheErr.Error()))
	}
	return user, nil
}

func (c *Client) GetUsers(ctx context.Context, ids []string) (map[string]*model.User, error) {
	start := time.Now()
	cached, err := c.userCache.GetUsers(ctx, ids)
	c.metrics.RecordCacheOperationDuration("user_mget", time.Since(start))
	if err != nil {
		c.log.Warn("Failed to batch-get users from cache", slog.String("error", err.Error()))
		cached = map[string]*model.User{}
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, found := cached[id]; found {
			c.metrics.IncrementCacheHits()
		} else {
			c.metrics.IncrementCacheMisses()
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return cached, nil
	}

	fetched, err := c.inner.GetUsers(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, user := range fetched {
		cached[id] = user
		if cacheErr := c.userCache.SetUser(ctx, user); cacheErr != nil {
			c.log.Warn("Failed to cache user",
				slog.String("user_id", id),
				slog.String("error", cacheErr.Error()))
		}
	}
	return cached, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string, token string) error {
	if err := c.inner.DeleteUser(ctx, id, token); err != nil {
		return err
	}

	if cacheErr := c.userCache.DeleteUser(ctx, id); cacheErr != nil {
		c.log.Warn("Failed to invalidate user cache after account deletion",
			slog.String("user_id", id),
			slog.String("error", cacheErr.Error()))
	}
	return nil
}
