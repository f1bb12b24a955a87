package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pubhub-publication-service/internal/custom_errors"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/model"
)

const (
	userCacheKeyPrefix = "user:"
	userCacheTTL       = 15 * time.Minute
)

// UserCache memoizes identity-provider user lookups. Post data is never
// cached here.
type UserCache struct {
	client *Client
	log    *logger.Logger
}

func NewUserCache(client *Client, log *logger.Logger) *UserCache {
	return &UserCache{
		client: client,
		log:    log,
	}
}

func (u *UserCache) GetUser(ctx context.Context, userID string) (*model.User, error) {
	key := u.getUserKey(userID)

	var user model.User
	err := u.client.Get(ctx, key, &user)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			u.log.Debug("User cache miss", slog.String("user_id", userID))
			return nil, custom_errors.ErrCacheMiss
		}
		u.log.Error("Failed to get user from cache",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	u.log.Debug("User cache hit", slog.String("user_id", userID))
	return &user, nil
}

// GetUsers returns the cached subset of the requested users; callers fetch
// the rest from the identity provider.
func (u *UserCache) GetUsers(ctx context.Context, userIDs []string) (map[string]*model.User, error) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, u.getUserKey(id))
	}

	raw, err := u.client.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to mget users from cache: %w", err)
	}

	result := make(map[string]*model.User, len(raw))
	for i, id := range userIDs {
		val, found := raw[keys[i]]
		if !found {
			continue
		}
		var user model.User
		if err := json.Unmarshal([]byte(val), &user); err != nil {
			u.log.Error("Failed to unmarshal cached user",
				slog.String("user_id", id),
				slog.String("error", err.Error()))
			continue
		}
		result[id] = &user
	}

	u.log.Debug("User cache batch lookup",
		slog.Int("requested", len(userIDs)),
		slog.Int("found", len(result)))
	return result, nil
}

func (u *UserCache) SetUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}

	key := u.getUserKey(user.ID)

	if err := u.client.Set(ctx, key, user, userCacheTTL); err != nil {
		u.log.Error("Failed to set user cache",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set user cache: %w", err)
	}

	u.log.Debug("User cached successfully",
		slog.String("user_id", user.ID),
		slog.Duration("ttl", userCacheTTL))
	return nil
}

func (u *UserCache) DeleteUser(ctx context.Context, userID string) error {
	key := u.getUserKey(userID)

	if err := u.client.Delete(ctx, key); err != nil {
		u.log.Error("Failed to delete user from cache",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}

	u.log.Debug("User deleted from cache", slog.String("user_id", userID))
	return nil
}

func (u *UserCache) getUserKey(userID string) string {
	return userCacheKeyPrefix + userID
}
