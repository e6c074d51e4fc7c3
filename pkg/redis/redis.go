package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerlist/dealerlist-backend/config"
	"github.com/dealerlist/dealerlist-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		client = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance, nil when Redis is not configured
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

const summaryKey = "dealers:summary"

// CacheSummary stores the serialized dealer summary with the given TTL.
func CacheSummary(ctx context.Context, payload []byte, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	if err := client.Set(ctx, summaryKey, payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache dealer summary", err, nil)
		return err
	}
	return nil
}

// GetCachedSummary returns the cached summary payload, nil on miss.
func GetCachedSummary(ctx context.Context) ([]byte, error) {
	if client == nil {
		return nil, nil
	}
	payload, err := client.Get(ctx, summaryKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// InvalidateSummary drops the cached summary after a dealer mutation.
func InvalidateSummary(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, summaryKey).Err(); err != nil {
		logger.Warn("Failed to invalidate dealer summary cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
