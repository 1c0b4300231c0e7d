package ports

import (
	"context"
	"time"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// UpdateCustomerInput carries the mutable contact and name fields. ID, DNI,
// RUC, customer type and the product list are never taken from an update
// payload.
type UpdateCustomerInput struct {
	FirstName    string
	LastName     string
	BusinessName string
	Address      string
	Phone        string
	Email        string
}

// CustomerService defines the customer lifecycle use cases.
type CustomerService interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, id string, in UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	AddProduct(ctx context.Context, customerID string, p domain.Product) error
	RemoveProduct(ctx context.Context, customerID, productID string) error
	// GetProducts streams the live portfolio; downstream failures degrade to
	// an empty list, never an error.
	GetProducts(ctx context.Context, customerID string) ([]domain.Product, error)
}

// ReportService generates product reports over a date range.
type ReportService interface {
	ProductReport(ctx context.Context, from, to time.Time) ([]ProductReport, error)
}

// DebitCardService manages debit card association and balance lookups.
type DebitCardService interface {
	Associate(ctx context.Context, customerID string, in DebitCardAssociation) (string, error)
	MainAccountBalance(ctx context.Context, productID, cardID string) (*DebitCardBalance, error)
	MainAccountID(ctx context.Context, customerID, cardID string) (string, error)
}

// PaymentService pays credit products through the external product service.
type PaymentService interface {
	PayCreditProduct(ctx context.Context, customerID string, in PaymentInput) (*PaymentResult, error)
}
