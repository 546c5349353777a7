package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"github.com/redis/go-redis/v9"
)

// Redis provides a read-only Redis dataset source.
// Records are JSON encoded elements of a single list, read with LRANGE in list order.
type Redis struct {
	Client *redis.Client
	Key    string
}

// DefaultRedisKey is the list read when none is configured.
const DefaultRedisKey = "qa:records"

// NewRedis creates a new Redis client connection with the provided configuration.
// It returns an initialized Redis struct and any error encountered during connection setup.
func NewRedis(addr, password string, db int, key string) (Redis, error) {
	if key == "" {
		key = DefaultRedisKey
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return Redis{}, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return Redis{
		Client: client,
		Key:    key,
	}, nil
}

// Records reads the whole list. A missing key yields an empty dataset.
func (r Redis) Records(ctx context.Context) ([]golightqa.QARecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	values, err := r.Client.LRange(ctx, r.Key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", r.Key, err)
	}

	records := make([]golightqa.QARecord, 0, len(values))
	for i, v := range values {
		var rec golightqa.QARecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode element %d of %s: %w", i, r.Key, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Close closes the underlying client.
func (r Redis) Close() error {
	return r.Client.Close()
}
