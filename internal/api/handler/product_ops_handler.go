package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bankcore/customer-service/internal/core/ports"
)

// ProductOpsHandler exposes the report, debit-card and payment operations
// proxied to the external product service.
type ProductOpsHandler struct {
	reports   ports.ReportService
	debitCard ports.DebitCardService
	payments  ports.PaymentService
}

func NewProductOpsHandler(reports ports.ReportService, debitCard ports.DebitCardService, payments ports.PaymentService) *ProductOpsHandler {
	return &ProductOpsHandler{reports: reports, debitCard: debitCard, payments: payments}
}

type associateDebitCardRequest struct {
	CardID     string   `json:"cardId" validate:"required"`
	AccountIDs []string `json:"accountIds" validate:"required,min=1"`
}

type payRequest struct {
	TargetProductID string  `json:"targetProductId" validate:"required"`
	SourceProductID string  `json:"sourceProductId"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
}

// Report handles GET /v1/reports/products?from=DATE&to=DATE.
//
// @Summary      Generate a product report for a period
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        to    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200   {array}   ports.ProductReport
// @Failure      400   {object}  map[string]string
// @Router       /v1/reports/products [get]
func (h *ProductOpsHandler) Report(c echo.Context) error {
	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'from' date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid 'to' date, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "'to' must not precede 'from'")
	}

	records, err := h.reports.ProductReport(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	if records == nil {
		records = []ports.ProductReport{}
	}
	return c.JSON(http.StatusOK, records)
}

// AssociateDebitCard handles POST /v1/customers/:id/debit-cards.
//
// @Summary      Associate a debit card with a customer's accounts
// @Tags         debit-cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Customer id"
// @Param        body  body      associateDebitCardRequest  true  "Association"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /v1/customers/{id}/debit-cards [post]
func (h *ProductOpsHandler) AssociateDebitCard(c echo.Context) error {
	var req associateDebitCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.debitCard.Associate(c.Request().Context(), c.Param("id"), ports.DebitCardAssociation{
		CardID:     req.CardID,
		AccountIDs: req.AccountIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": result})
}

// DebitCardMainAccount handles GET /v1/customers/:id/debit-cards/:cardId/main-account.
//
// @Summary      Resolve the main account product behind a debit card
// @Tags         debit-cards
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Customer id"
// @Param        cardId  path      string  true  "Debit card id"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Router       /v1/customers/{id}/debit-cards/{cardId}/main-account [get]
func (h *ProductOpsHandler) DebitCardMainAccount(c echo.Context) error {
	productID, err := h.debitCard.MainAccountID(c.Request().Context(), c.Param("id"), c.Param("cardId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"productId": productID})
}

// DebitCardBalance handles GET /v1/products/:productId/debit-cards/:cardId/balance.
//
// @Summary      Get the main-account balance behind a debit card
// @Tags         debit-cards
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product id"
// @Param        cardId     path      string  true  "Debit card id"
// @Success      200        {object}  ports.DebitCardBalance
// @Failure      400        {object}  map[string]string
// @Router       /v1/products/{productId}/debit-cards/{cardId}/balance [get]
func (h *ProductOpsHandler) DebitCardBalance(c echo.Context) error {
	balance, err := h.debitCard.MainAccountBalance(c.Request().Context(), c.Param("productId"), c.Param("cardId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balance)
}

// Pay handles POST /v1/products/:productId/pay.
//
// @Summary      Pay a credit product
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string      true  "Target product id"
// @Param        body       body      payRequest  true  "Payment"
// @Success      200        {object}  ports.PaymentResult
// @Failure      400        {object}  map[string]string
// @Router       /v1/products/{productId}/pay [post]
func (h *ProductOpsHandler) Pay(c echo.Context) error {
	var req payRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.TargetProductID = c.Param("productId")
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.payments.PayCreditProduct(c.Request().Context(), c.QueryParam("customerId"), ports.PaymentInput{
		TargetProductID: req.TargetProductID,
		SourceProductID: req.SourceProductID,
		Amount:          req.Amount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
