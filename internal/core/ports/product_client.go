package ports

import (
	"context"
	"time"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// CreateProductInput is the body of the create-product call to the external
// product service.
type CreateProductInput struct {
	CustomerID string `json:"customerId"`
	Category   string `json:"category,omitempty"`
	Type       string `json:"type"`
	SubType    string `json:"subType"`
}

// ProductReport is one record of the product service's report endpoint.
type ProductReport struct {
	ProductID  string    `json:"productId"`
	CustomerID string    `json:"customerId"`
	Type       string    `json:"type"`
	SubType    string    `json:"subType"`
	Balance    float64   `json:"balance"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DebitCardAssociation asks the product service to link a debit card to one
// or more of a customer's accounts.
type DebitCardAssociation struct {
	CardID     string   `json:"cardId"`
	AccountIDs []string `json:"accountIds"`
}

// DebitCardBalance is the balance of the main account behind a debit card.
type DebitCardBalance struct {
	CardID    string  `json:"cardId"`
	ProductID string  `json:"productId"`
	Balance   float64 `json:"balance"`
}

// PaymentInput is a payment towards a credit product.
type PaymentInput struct {
	TargetProductID string  `json:"targetProductId"`
	SourceProductID string  `json:"sourceProductId,omitempty"`
	Amount          float64 `json:"amount"`
}

// PaymentResult is the outcome of a payment attempt.
type PaymentResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ProductClient is the raw HTTP contract with the external product service.
// Callers are expected to route every method through the resilience wrapper;
// the client itself performs no timeout or breaker gating.
type ProductClient interface {
	GetByCustomer(ctx context.Context, customerID string) ([]domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) error
	Delete(ctx context.Context, productID, customerID string) error
	Report(ctx context.Context, from, to time.Time) ([]ProductReport, error)
	AssociateDebitCard(ctx context.Context, customerID string, in DebitCardAssociation) (string, error)
	DebitCardBalance(ctx context.Context, productID, cardID string) (*DebitCardBalance, error)
	MainAccountID(ctx context.Context, customerID, cardID string) (string, error)
	Pay(ctx context.Context, in PaymentInput) (*PaymentResult, error)
}
