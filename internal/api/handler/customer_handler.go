package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankcore/customer-service/internal/core/domain"
	"github.com/bankcore/customer-service/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer lifecycle operations.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /v1/customers.
//
// @Summary      List all customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   customerResponse
// @Failure      500  {object}  map[string]string
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]customerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, toCustomerResponse(&customers[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/customers/:id.
//
// @Summary      Get a customer by id
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  customerResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Create handles POST /v1/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  customerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), domain.Customer{
		CustomerType: req.CustomerType,
		Profile:      req.Profile,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BusinessName: req.BusinessName,
		DNI:          req.DNI,
		RUC:          req.RUC,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCustomerResponse(created))
}

// Update handles PUT /v1/customers/:id. Only contact and name fields are
// taken from the payload.
//
// @Summary      Update a customer's mutable fields
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Customer id"
// @Param        body  body      updateCustomerRequest  true  "Mutable fields"
// @Success      200   {object}  customerResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateCustomerInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BusinessName: req.BusinessName,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerResponse(updated))
}

// Delete handles DELETE /v1/customers/:id.
//
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Customer id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetProducts handles GET /v1/customers/:id/products.
//
// @Summary      List a customer's live product portfolio
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {array}   domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /v1/customers/{id}/products [get]
func (h *CustomerHandler) GetProducts(c echo.Context) error {
	products, err := h.service.GetProducts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

// AddProduct handles POST /v1/customers/:id/products.
//
// @Summary      Add a product to a customer
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Customer id"
// @Param        body  body      addProductRequest  true  "Candidate product"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/customers/{id}/products [post]
func (h *CustomerHandler) AddProduct(c echo.Context) error {
	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.AddProduct(c.Request().Context(), c.Param("id"), domain.Product{
		Category: req.Category,
		Type:     req.Type,
		SubType:  req.SubType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "product added"})
}

// RemoveProduct handles DELETE /v1/customers/:id/products/:productId.
//
// @Summary      Remove a product from a customer
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id         path  string  true  "Customer id"
// @Param        productId  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/customers/{id}/products/{productId} [delete]
func (h *CustomerHandler) RemoveProduct(c echo.Context) error {
	err := h.service.RemoveProduct(c.Request().Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
