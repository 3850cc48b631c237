package preferences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for RedisStore
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// RedisStore keeps the profile as a JSON string under [Prefix]user_resume_preferences.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, key: prefix + Key}
}

// Save implements Store
func (s *RedisStore) Save(ctx context.Context, profile *types.PreferencesProfile) error {
	data, err := encode("redis", profile)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return &StorageError{Backend: "redis", Op: "save", Message: "SET failed", Cause: err}
	}
	return nil
}

// Load implements Store
func (s *RedisStore) Load(ctx context.Context) (*types.PreferencesProfile, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, &StorageError{Backend: "redis", Op: "load", Message: "GET failed", Cause: err}
	}
	return decode("redis", data)
}

// Clear implements Store
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return &StorageError{Backend: "redis", Op: "clear", Message: "DEL failed", Cause: err}
	}
	return nil
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
