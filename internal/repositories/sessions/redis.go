package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/models"
)

// RedisRegistry keeps sessions in redis under session:<token> keys with a
// native TTL, so expiry needs no purge pass. Durable enough for multi-node
// deployments that already run redis; SETNX guards token uniqueness.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl, now: time.Now}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (r *RedisRegistry) Issue(ctx context.Context, userID string) (*models.SessionToken, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		token, err := newToken()
		if err != nil {
			return nil, fmt.Errorf("token generation: %w", err)
		}

		createdAt := r.now()
		s := models.SessionToken{
			Token:     token,
			UserID:    userID,
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(r.ttl),
		}

		set, err := r.client.SetNX(ctx, sessionKey(token), userID, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis error: %w", err)
		}
		if !set {
			// Key already present, token collision; regenerate and retry.
			continue
		}
		return &s, nil
	}

	return nil, fmt.Errorf("token generation: %w", common.ErrInternal)
}

func (r *RedisRegistry) Validate(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Absent and expired keys are identical in redis.
			return "", common.ErrInvalidSession
		}
		return "", fmt.Errorf("redis error: %w", err)
	}
	return userID, nil
}

func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
