package utils

import (
	"context" // Context for Redis operations
	"strconv" // Counter parsing
	"strings" // Key normalization
	"time"    // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

const loginAttemptPrefix = "login:attempts:"

// RedisAttemptStore counts failed logins per gmail in Redis
type RedisAttemptStore struct {
	rdb *redis.Client
}

// NewRedisAttemptStore wraps a connected Redis client
func NewRedisAttemptStore(rdb *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{rdb: rdb}
}

func attemptKey(gmail string) string {
	return loginAttemptPrefix + strings.ToLower(strings.TrimSpace(gmail))
}

// Failures returns the current failure count for gmail
func (s *RedisAttemptStore) Failures(ctx context.Context, gmail string) (int, error) {
	val, err := s.rdb.Get(ctx, attemptKey(gmail)).Result()
	if err == redis.Nil {
		return 0, nil // Key does not exist
	} else if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

// RecordFailure increments the counter; the window starts at the first failure
func (s *RedisAttemptStore) RecordFailure(ctx context.Context, gmail string, window time.Duration) error {
	key := attemptKey(gmail)
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return s.rdb.Expire(ctx, key, window).Err()
	}
	return nil
}

// Reset clears the counter after a successful login
func (s *RedisAttemptStore) Reset(ctx context.Context, gmail string) error {
	return s.rdb.Del(ctx, attemptKey(gmail)).Err()
}
