package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bankcore/customer-service/internal/core/ports"
	"github.com/bankcore/customer-service/internal/pkg/resilience"
)

// PaymentService pays credit products through the external product service.
// A downstream failure degrades to a FAILED result carrying the error message
// rather than an error return, so callers always get a payment outcome.
type PaymentService struct {
	products ports.ProductClient
	guard    *resilience.Wrapper
	logger   zerolog.Logger
}

func NewPaymentService(products ports.ProductClient, guard *resilience.Wrapper, logger zerolog.Logger) *PaymentService {
	return &PaymentService{products: products, guard: guard, logger: logger}
}

// PayCreditProduct executes a payment towards the target credit product.
func (s *PaymentService) PayCreditProduct(ctx context.Context, customerID string, in ports.PaymentInput) (*ports.PaymentResult, error) {
	result, err := resilience.Do(ctx, s.guard, func(ctx context.Context) (*ports.PaymentResult, error) {
		return s.products.Pay(ctx, in)
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("customer_id", customerID).
			Str("target_product_id", in.TargetProductID).
			Msg("payment processing failed")
		return &ports.PaymentResult{Status: "FAILED", Message: err.Error()}, nil
	}

	s.logger.Debug().
		Str("customer_id", customerID).
		Str("target_product_id", in.TargetProductID).
		Msg("payment processed")
	return result, nil
}
