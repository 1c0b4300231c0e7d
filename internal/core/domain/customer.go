package domain

import "errors"

// Customer types.
const (
	CustomerPersonal = "PERSONAL"
	CustomerBusiness = "BUSINESS"
)

// Customer profiles.
const (
	ProfileStandard = "STANDARD"
	ProfileVIP      = "VIP"
	ProfilePYME     = "PYME"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrDNIExists = errors.New("dni already exists")
var ErrProductServiceUnavailable = errors.New("product service unavailable")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")

// ErrBusinessRule marks a business-rule rejection. Violations wrap it with a
// human-readable reason so the API layer can render the specific message.
var ErrBusinessRule = errors.New("business rule violated")

// ErrCacheMiss is returned by the customer cache when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// Customer is the core aggregate root. ID is empty until first persisted.
// DNI is unique across all customers (enforced at creation); DNI and RUC are
// immutable after creation, as is CustomerType.
type Customer struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	CustomerType string    `json:"customer_type" bson:"customer_type"`
	Profile      string    `json:"profile" bson:"profile"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	BusinessName string    `json:"business_name,omitempty" bson:"business_name,omitempty"`
	DNI          string    `json:"dni" bson:"dni"`
	RUC          string    `json:"ruc,omitempty" bson:"ruc,omitempty"`
	Address      string    `json:"address" bson:"address"`
	Phone        string    `json:"phone" bson:"phone"`
	Email        string    `json:"email" bson:"email"`
	Products     []Product `json:"products,omitempty" bson:"products,omitempty"`
}

// TypeOrDefault returns the customer type, defaulting to PERSONAL when unset.
// Default substitution is done here and nowhere else, so every consumer of
// the customer type sees the same value.
func (c *Customer) TypeOrDefault() string {
	if c.CustomerType == "" {
		return CustomerPersonal
	}
	return c.CustomerType
}

// ProfileOrDefault returns the profile, defaulting to STANDARD when unset.
func (c *Customer) ProfileOrDefault() string {
	if c.Profile == "" {
		return ProfileStandard
	}
	return c.Profile
}
