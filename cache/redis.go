package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Drolfothesgnir/mfm/util"
	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(config *util.Config) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  default "localhost:6379"
		Password: "",                  // "" for no password, ok for now
		DB:       0,                   // 0 for default database
	})

	return &RedisStore{client: rdb}
}

// Ping checks the connection, so a broken address shows up at start-up and not with the first request.
func (store *RedisStore) Ping(ctx context.Context) error {
	return store.client.Ping(ctx).Err()
}

// SaveParsed stores a parse result for ttl. A zero ttl keeps it until it's evicted.
func (store *RedisStore) SaveParsed(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize parse result: %w", err)
	}

	return store.client.Set(ctx, key, jsonData, ttl).Err()
}

// GetParsed returns the parse result stored under key, or ErrCacheMiss.
func (store *RedisStore) GetParsed(ctx context.Context, key string) (*Entry, error) {
	jsonData, err := store.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get parse result: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(jsonData, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse cached result json: %w", err)
	}

	return &entry, nil
}

func (store *RedisStore) Close() error {
	return store.client.Close()
}
