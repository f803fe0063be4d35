package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "otp:"

// consumeScript deletes KEYS[1] only when it holds ARGV[1]
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore shares challenges between API instances through Redis
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a Redis backed store. A ttl of zero stores keys without expiry.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Put stores code for email, replacing any previous challenge
func (s *RedisStore) Put(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, redisKey(email), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

// Consume atomically deletes the challenge for email if it matches code
func (s *RedisStore) Consume(ctx context.Context, email, code string) (bool, error) {
	deleted, err := consumeScript.Run(ctx, s.client, []string{redisKey(email)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}
	return deleted == 1, nil
}

func redisKey(email string) string {
	return redisKeyPrefix + NormalizeEmail(email)
}
