package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore answers whether an access token is still live. The authentication
// service registers tokens on login and deletes them on logout.
type TokenStore interface {
	IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Register(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
}

type redisTokenStore struct {
	redisClient *redis.Client
}

func NewRedisTokenStore(redisClient *redis.Client) TokenStore {
	return &redisTokenStore{redisClient: redisClient}
}

func AccessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
}

func (s *redisTokenStore) IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, AccessTokenKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *redisTokenStore) Register(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.redisClient.Set(ctx, AccessTokenKey(userID, tokenID), "valid", ttl).Err()
}
