package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appbilling "github.com/bizadmin/backend/internal/application/billing"
	apppartner "github.com/bizadmin/backend/internal/application/partner"
	"github.com/bizadmin/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBalanceCache stores reconciled balances in Redis with a short TTL.
// A cache miss is reported as a nil balance, never as an error.
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from configuration and verifies
// the connection
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRedisBalanceCache creates a balance cache on an existing Redis client
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration) *RedisBalanceCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisBalanceCache{client: client, ttl: ttl}
}

func clientBalanceKey(clientID uuid.UUID) string {
	return "balance:client:" + clientID.String()
}

func supplierBalanceKey(supplierID uuid.UUID) string {
	return "balance:supplier:" + supplierID.String()
}

// GetClientBalance returns the cached balance, or nil on a miss
func (c *RedisBalanceCache) GetClientBalance(ctx context.Context, clientID uuid.UUID) (*apppartner.ClientBalance, error) {
	data, err := c.client.Get(ctx, clientBalanceKey(clientID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached client balance: %w", err)
	}

	var balance apppartner.ClientBalance
	if err := json.Unmarshal(data, &balance); err != nil {
		return nil, fmt.Errorf("failed to decode cached client balance: %w", err)
	}
	return &balance, nil
}

// SetClientBalance caches a computed client balance
func (c *RedisBalanceCache) SetClientBalance(ctx context.Context, balance *apppartner.ClientBalance) error {
	data, err := json.Marshal(balance)
	if err != nil {
		return fmt.Errorf("failed to encode client balance: %w", err)
	}
	if err := c.client.Set(ctx, clientBalanceKey(balance.ClientID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache client balance: %w", err)
	}
	return nil
}

// GetSupplierBalance returns the cached balance, or nil on a miss
func (c *RedisBalanceCache) GetSupplierBalance(ctx context.Context, supplierID uuid.UUID) (*apppartner.SupplierBalance, error) {
	data, err := c.client.Get(ctx, supplierBalanceKey(supplierID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached supplier balance: %w", err)
	}

	var balance apppartner.SupplierBalance
	if err := json.Unmarshal(data, &balance); err != nil {
		return nil, fmt.Errorf("failed to decode cached supplier balance: %w", err)
	}
	return &balance, nil
}

// SetSupplierBalance caches a computed supplier balance
func (c *RedisBalanceCache) SetSupplierBalance(ctx context.Context, balance *apppartner.SupplierBalance) error {
	data, err := json.Marshal(balance)
	if err != nil {
		return fmt.Errorf("failed to encode supplier balance: %w", err)
	}
	if err := c.client.Set(ctx, supplierBalanceKey(balance.SupplierID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache supplier balance: %w", err)
	}
	return nil
}

// InvalidateClient drops the cached balance for a client
func (c *RedisBalanceCache) InvalidateClient(ctx context.Context, clientID uuid.UUID) error {
	if err := c.client.Del(ctx, clientBalanceKey(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate client balance: %w", err)
	}
	return nil
}

// InvalidateSupplier drops the cached balance for a supplier
func (c *RedisBalanceCache) InvalidateSupplier(ctx context.Context, supplierID uuid.UUID) error {
	if err := c.client.Del(ctx, supplierBalanceKey(supplierID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate supplier balance: %w", err)
	}
	return nil
}

var _ apppartner.BalanceCache = (*RedisBalanceCache)(nil)

// BalanceInvalidator adapts a BalanceCache for callers that only drop
// entries and treat failures as log-worthy, not fatal. A stale balance
// expires with the TTL anyway.
type BalanceInvalidator struct {
	cache  apppartner.BalanceCache
	logger *zap.Logger
}

// NewBalanceInvalidator creates a new BalanceInvalidator
func NewBalanceInvalidator(cache apppartner.BalanceCache, logger *zap.Logger) *BalanceInvalidator {
	return &BalanceInvalidator{cache: cache, logger: logger}
}

// InvalidateClient drops the client's cached balance, logging failures
func (i *BalanceInvalidator) InvalidateClient(ctx context.Context, clientID uuid.UUID) {
	if err := i.cache.InvalidateClient(ctx, clientID); err != nil {
		i.logger.Warn("failed to invalidate client balance cache",
			zap.String("client_id", clientID.String()),
			zap.Error(err))
	}
}

// InvalidateSupplier drops the supplier's cached balance, logging failures
func (i *BalanceInvalidator) InvalidateSupplier(ctx context.Context, supplierID uuid.UUID) {
	if err := i.cache.InvalidateSupplier(ctx, supplierID); err != nil {
		i.logger.Warn("failed to invalidate supplier balance cache",
			zap.String("supplier_id", supplierID.String()),
			zap.Error(err))
	}
}

var _ appbilling.BalanceCacheInvalidator = (*BalanceInvalidator)(nil)
