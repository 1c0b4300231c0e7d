package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// customerTTL bounds staleness of cached customer snapshots. There is no
// cross-instance invalidation; expiry is the self-healing mechanism.
const customerTTL = time.Hour

// CustomerCache stores JSON customer snapshots keyed by id.
// Key format: customer:<id>
type CustomerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCustomerCache wraps the given Redis client. A ttl <= 0 falls back to
// the one-hour default.
func NewCustomerCache(client *redis.Client, ttl time.Duration) *CustomerCache {
	if ttl <= 0 {
		ttl = customerTTL
	}
	return &CustomerCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot or domain.ErrCacheMiss.
func (c *CustomerCache) Get(ctx context.Context, id string) (*domain.Customer, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var customer domain.Customer
	if err := json.Unmarshal(raw, &customer); err != nil {
		// A corrupt entry behaves like a miss so the store copy wins.
		return nil, domain.ErrCacheMiss
	}
	return &customer, nil
}

// Set writes the snapshot with the configured TTL.
func (c *CustomerCache) Set(ctx context.Context, customer *domain.Customer) error {
	raw, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.key(customer.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete evicts the snapshot for id.
func (c *CustomerCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *CustomerCache) key(id string) string {
	return "customer:" + id
}
