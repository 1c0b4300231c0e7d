package handler

import "github.com/bankcore/customer-service/internal/core/domain"

type createCustomerRequest struct {
	CustomerType string `json:"customer_type" validate:"required,oneof=PERSONAL BUSINESS"`
	Profile      string `json:"profile" validate:"required,oneof=STANDARD VIP PYME"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	BusinessName string `json:"business_name"`
	DNI          string `json:"dni" validate:"required,len=8,numeric"`
	RUC          string `json:"ruc" validate:"omitempty,len=11,numeric"`
	Address      string `json:"address"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
}

type updateCustomerRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
}

type addProductRequest struct {
	Category string `json:"category" validate:"omitempty,oneof=LIABILITY ASSET"`
	Type     string `json:"type" validate:"required,oneof=ACCOUNT LOAN CREDIT_CARD"`
	SubType  string `json:"subType" validate:"required"`
}

type customerResponse struct {
	ID           string           `json:"id"`
	CustomerType string           `json:"customer_type"`
	Profile      string           `json:"profile"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	BusinessName string           `json:"business_name,omitempty"`
	DNI          string           `json:"dni"`
	RUC          string           `json:"ruc,omitempty"`
	Address      string           `json:"address"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email"`
	Products     []domain.Product `json:"products,omitempty"`
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:           c.ID,
		CustomerType: c.CustomerType,
		Profile:      c.Profile,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		BusinessName: c.BusinessName,
		DNI:          c.DNI,
		RUC:          c.RUC,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		Products:     c.Products,
	}
}
