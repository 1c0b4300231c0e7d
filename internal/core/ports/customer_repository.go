package ports

import (
	"context"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
	// FindByID retrieves a customer by id; returns domain.ErrCustomerNotFound
	// when no document matches.
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// Save upserts: inserts with a server-assigned id when the customer has
	// none, replaces the existing document otherwise.
	Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByDNI(ctx context.Context, dni string) (bool, error)
}
