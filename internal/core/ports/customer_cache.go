package ports

import (
	"context"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// CustomerCache stores TTL'd customer snapshots keyed by id.
type CustomerCache interface {
	// Get returns the cached snapshot, or domain.ErrCacheMiss.
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Set(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}
