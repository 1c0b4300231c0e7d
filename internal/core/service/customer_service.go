package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bankcore/customer-service/internal/api/metrics"
	"github.com/bankcore/customer-service/internal/core/domain"
	"github.com/bankcore/customer-service/internal/core/ports"
	"github.com/bankcore/customer-service/internal/pkg/resilience"
)

// CustomerService orchestrates the customer lifecycle: store access,
// cache-aside reads, eligibility validation, resilience-wrapped product
// service calls, and lifecycle event emission.
//
// The store write is the ordering anchor of every mutation; cache refresh and
// event emission are best-effort side effects sequenced after it and never
// fail the operation.
type CustomerService struct {
	repo     ports.CustomerRepository
	cache    ports.CustomerCache
	products ports.ProductClient
	guard    *resilience.Wrapper
	emitter  ports.EventEmitter
	logger   zerolog.Logger
}

func NewCustomerService(
	repo ports.CustomerRepository,
	cache ports.CustomerCache,
	products ports.ProductClient,
	guard *resilience.Wrapper,
	emitter ports.EventEmitter,
	logger zerolog.Logger,
) *CustomerService {
	return &CustomerService{
		repo:     repo,
		cache:    cache,
		products: products,
		guard:    guard,
		emitter:  emitter,
		logger:   logger,
	}
}

// FindAll returns every customer in the store.
func (s *CustomerService) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FindAll(ctx)
}

// FindByID is the cache-aside read path: cache hit wins, a miss loads from
// the store and repopulates the cache without gating the read on the cache
// write.
func (s *CustomerService) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("customer_id", id).Msg("cache read failed, falling back to store")
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, customer); cacheErr != nil {
		s.logger.Warn().Err(cacheErr).Str("customer_id", id).Msg("cache populate failed")
	}
	return customer, nil
}

// Create persists a new customer after checking DNI uniqueness, then
// best-effort populates the cache and emits a CREATED event.
func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	exists, err := s.repo.ExistsByDNI(ctx, c.DNI)
	if err != nil {
		return nil, fmt.Errorf("check dni: %w", err)
	}
	if exists {
		return nil, domain.ErrDNIExists
	}

	c.ID = ""
	saved, err := s.repo.Save(ctx, &c)
	if err != nil {
		s.logger.Error().Err(err).Str("dni", c.DNI).Msg("failed to create customer")
		return nil, err
	}
	metrics.CustomersCreatedTotal.WithLabelValues(saved.TypeOrDefault()).Inc()

	s.refreshCache(ctx, saved)
	s.emitter.Emit(domain.NewCustomerEvent(domain.EventCreated, *saved))

	s.logger.Info().Str("customer_id", saved.ID).Str("customer_type", saved.TypeOrDefault()).Msg("customer created")
	return saved, nil
}

// Update applies only the mutable contact and name fields onto the stored
// entity. ID, DNI, RUC, customer type and the product list survive any
// payload.
func (s *CustomerService) Update(ctx context.Context, id string, in ports.UpdateCustomerInput) (*domain.Customer, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.FirstName = in.FirstName
	existing.LastName = in.LastName
	existing.BusinessName = in.BusinessName
	existing.Address = in.Address
	existing.Phone = in.Phone
	existing.Email = in.Email

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id).Msg("failed to update customer")
		return nil, err
	}

	s.emitter.Emit(domain.NewCustomerEvent(domain.EventUpdated, *updated))
	s.refreshCache(ctx, updated)

	return updated, nil
}

// Delete hard-deletes a customer. The DELETED event is emitted before the
// store delete, so a consumer may observe the event while the document still
// exists; the window is accepted.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.emitter.Emit(domain.NewCustomerEvent(domain.EventDeleted, *customer))

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("customer_id", id).Msg("failed to delete customer")
		return err
	}

	if cacheErr := s.cache.Delete(ctx, id); cacheErr != nil {
		s.logger.Warn().Err(cacheErr).Str("customer_id", id).Msg("cache evict failed")
	}

	s.logger.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}

// AddProduct validates the candidate against the live portfolio and creates
// the product remotely. The external service owns the portfolio, so the
// local product list is never mutated and the portfolio is always re-fetched
// for the eligibility decision.
func (s *CustomerService) AddProduct(ctx context.Context, customerID string, p domain.Product) error {
	if p.Type == "" {
		return fmt.Errorf("%w: product data missing", domain.ErrBusinessRule)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	existing, err := resilience.Do(ctx, s.guard, func(ctx context.Context) ([]domain.Product, error) {
		return s.products.GetByCustomer(ctx, customerID)
	})
	if err != nil {
		metrics.DownstreamFailuresTotal.WithLabelValues("fetch_portfolio").Inc()
		return err
	}

	if err := ValidateProductAddition(
		customer.TypeOrDefault(),
		customer.ProfileOrDefault(),
		p.Type, p.SubType, existing,
	); err != nil {
		metrics.ProductRuleRejectionsTotal.Inc()
		return err
	}

	_, err = resilience.Do(ctx, s.guard, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.products.Create(ctx, ports.CreateProductInput{
			CustomerID: customerID,
			Category:   p.Category,
			Type:       p.Type,
			SubType:    p.SubType,
		})
	})
	if err != nil {
		metrics.DownstreamFailuresTotal.WithLabelValues("create_product").Inc()
		return err
	}

	s.logger.Info().
		Str("customer_id", customerID).
		Str("type", p.Type).
		Str("sub_type", p.SubType).
		Msg("product added")
	return nil
}

// RemoveProduct asks the external service to drop the product association.
func (s *CustomerService) RemoveProduct(ctx context.Context, customerID, productID string) error {
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		return err
	}

	_, err := resilience.Do(ctx, s.guard, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.products.Delete(ctx, productID, customerID)
	})
	if err != nil {
		metrics.DownstreamFailuresTotal.WithLabelValues("delete_product").Inc()
		return err
	}

	s.logger.Info().Str("customer_id", customerID).Str("product_id", productID).Msg("product removed")
	return nil
}

// GetProducts streams the live portfolio from the external service. The
// streaming contract fails open: downstream failure yields an empty list.
func (s *CustomerService) GetProducts(ctx context.Context, customerID string) ([]domain.Product, error) {
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	products := resilience.DoStream(ctx, s.guard, func(ctx context.Context) ([]domain.Product, error) {
		return s.products.GetByCustomer(ctx, customerID)
	})
	return products, nil
}

// refreshCache writes the snapshot before the mutation returns so an
// immediate re-read on this instance cannot observe the stale entry.
func (s *CustomerService) refreshCache(ctx context.Context, c *domain.Customer) {
	if err := s.cache.Set(ctx, c); err != nil {
		s.logger.Warn().Err(err).Str("customer_id", c.ID).Msg("cache refresh failed")
	}
}
