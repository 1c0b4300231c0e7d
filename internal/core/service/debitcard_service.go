package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bankcore/customer-service/internal/core/ports"
	"github.com/bankcore/customer-service/internal/pkg/resilience"
)

// DebitCardService handles debit card association and balance lookups against
// the external product service. All calls are single-result and fail closed.
type DebitCardService struct {
	products ports.ProductClient
	guard    *resilience.Wrapper
	logger   zerolog.Logger
}

func NewDebitCardService(products ports.ProductClient, guard *resilience.Wrapper, logger zerolog.Logger) *DebitCardService {
	return &DebitCardService{products: products, guard: guard, logger: logger}
}

// Associate links a debit card to one or more of the customer's accounts.
func (s *DebitCardService) Associate(ctx context.Context, customerID string, in ports.DebitCardAssociation) (string, error) {
	result, err := resilience.Do(ctx, s.guard, func(ctx context.Context) (string, error) {
		return s.products.AssociateDebitCard(ctx, customerID, in)
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug().Str("customer_id", customerID).Str("card_id", in.CardID).Msg("debit card associated")
	return result, nil
}

// MainAccountBalance returns the balance of the main account behind a card.
func (s *DebitCardService) MainAccountBalance(ctx context.Context, productID, cardID string) (*ports.DebitCardBalance, error) {
	balance, err := resilience.Do(ctx, s.guard, func(ctx context.Context) (*ports.DebitCardBalance, error) {
		return s.products.DebitCardBalance(ctx, productID, cardID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("product_id", productID).Str("card_id", cardID).Msg("balance retrieved")
	return balance, nil
}

// MainAccountID resolves the main account product behind a card.
func (s *DebitCardService) MainAccountID(ctx context.Context, customerID, cardID string) (string, error) {
	return resilience.Do(ctx, s.guard, func(ctx context.Context) (string, error) {
		return s.products.MainAccountID(ctx, customerID, cardID)
	})
}
