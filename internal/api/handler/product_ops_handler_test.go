package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bankcore/customer-service/internal/core/ports"
)

type stubReportService struct {
	fn func(ctx context.Context, from, to time.Time) ([]ports.ProductReport, error)
}

func (s *stubReportService) ProductReport(ctx context.Context, from, to time.Time) ([]ports.ProductReport, error) {
	return s.fn(ctx, from, to)
}

type stubDebitCardService struct {
	associateFn   func(ctx context.Context, customerID string, in ports.DebitCardAssociation) (string, error)
	balanceFn     func(ctx context.Context, productID, cardID string) (*ports.DebitCardBalance, error)
	mainAccountFn func(ctx context.Context, customerID, cardID string) (string, error)
}

func (s *stubDebitCardService) Associate(ctx context.Context, customerID string, in ports.DebitCardAssociation) (string, error) {
	return s.associateFn(ctx, customerID, in)
}

func (s *stubDebitCardService) MainAccountBalance(ctx context.Context, productID, cardID string) (*ports.DebitCardBalance, error) {
	return s.balanceFn(ctx, productID, cardID)
}

func (s *stubDebitCardService) MainAccountID(ctx context.Context, customerID, cardID string) (string, error) {
	return s.mainAccountFn(ctx, customerID, cardID)
}

type stubPaymentService struct {
	fn func(ctx context.Context, customerID string, in ports.PaymentInput) (*ports.PaymentResult, error)
}

func (s *stubPaymentService) PayCreditProduct(ctx context.Context, customerID string, in ports.PaymentInput) (*ports.PaymentResult, error) {
	return s.fn(ctx, customerID, in)
}

// ---------------------------------------------------------------------------
// Report
// ---------------------------------------------------------------------------

func TestProductOpsHandler_Report_Success(t *testing.T) {
	h := NewProductOpsHandler(&stubReportService{
		fn: func(_ context.Context, from, to time.Time) ([]ports.ProductReport, error) {
			if from.Format("2006-01-02") != "2026-01-01" || to.Format("2006-01-02") != "2026-01-31" {
				t.Fatalf("unexpected range: %v .. %v", from, to)
			}
			return []ports.ProductReport{{ProductID: "p1", Balance: 10}}, nil
		},
	}, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/reports/products?from=2026-01-01&to=2026-01-31", "")
	if err := h.Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var records []ports.ProductReport
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(records) != 1 || records[0].ProductID != "p1" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestProductOpsHandler_Report_BadDates(t *testing.T) {
	h := NewProductOpsHandler(&stubReportService{
		fn: func(_ context.Context, _, _ time.Time) ([]ports.ProductReport, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	}, nil, nil)

	targets := []string{
		"/v1/reports/products",
		"/v1/reports/products?from=01-01-2026&to=2026-01-31",
		"/v1/reports/products?from=2026-01-31&to=2026-01-01",
	}
	for _, target := range targets {
		c, _ := newTestContext(http.MethodGet, target, "")
		err := h.Report(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected a 400 HTTPError, got %v", target, err)
		}
	}
}

func TestProductOpsHandler_Report_DegradedIsEmptyArray(t *testing.T) {
	h := NewProductOpsHandler(&stubReportService{
		fn: func(_ context.Context, _, _ time.Time) ([]ports.ProductReport, error) {
			return nil, nil
		},
	}, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/reports/products?from=2026-01-01&to=2026-01-31", "")
	if err := h.Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var records []ports.ProductReport
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected an empty array, got %q", rec.Body.String())
	}
}

// ---------------------------------------------------------------------------
// Debit cards
// ---------------------------------------------------------------------------

func TestProductOpsHandler_AssociateDebitCard(t *testing.T) {
	h := NewProductOpsHandler(nil, &stubDebitCardService{
		associateFn: func(_ context.Context, customerID string, in ports.DebitCardAssociation) (string, error) {
			if customerID != "cust_1" || in.CardID != "card_7" || len(in.AccountIDs) != 2 {
				t.Fatalf("unexpected args: %s %+v", customerID, in)
			}
			return "card associated", nil
		},
	}, nil)

	c, rec := newTestContext(http.MethodPost, "/v1/customers/cust_1/debit-cards",
		`{"cardId":"card_7","accountIds":["acc_1","acc_2"]}`)
	c.SetParamNames("id")
	c.SetParamValues("cust_1")

	if err := h.AssociateDebitCard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductOpsHandler_AssociateDebitCard_RequiresAccounts(t *testing.T) {
	h := NewProductOpsHandler(nil, &stubDebitCardService{
		associateFn: func(_ context.Context, _ string, _ ports.DebitCardAssociation) (string, error) {
			t.Fatal("service must not be reached")
			return "", nil
		},
	}, nil)

	c, _ := newTestContext(http.MethodPost, "/v1/customers/cust_1/debit-cards",
		`{"cardId":"card_7","accountIds":[]}`)
	c.SetParamNames("id")
	c.SetParamValues("cust_1")

	err := h.AssociateDebitCard(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected a 400 HTTPError, got %v", err)
	}
}

func TestProductOpsHandler_DebitCardBalance(t *testing.T) {
	h := NewProductOpsHandler(nil, &stubDebitCardService{
		balanceFn: func(_ context.Context, productID, cardID string) (*ports.DebitCardBalance, error) {
			if productID != "prod_9" || cardID != "card_7" {
				t.Fatalf("unexpected args: %s %s", productID, cardID)
			}
			return &ports.DebitCardBalance{CardID: cardID, ProductID: productID, Balance: 520.75}, nil
		},
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/products/prod_9/debit-cards/card_7/balance", "")
	c.SetParamNames("productId", "cardId")
	c.SetParamValues("prod_9", "card_7")

	if err := h.DebitCardBalance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var balance ports.DebitCardBalance
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if balance.Balance != 520.75 {
		t.Errorf("unexpected balance: %+v", balance)
	}
}

func TestProductOpsHandler_DebitCardMainAccount(t *testing.T) {
	h := NewProductOpsHandler(nil, &stubDebitCardService{
		mainAccountFn: func(_ context.Context, customerID, cardID string) (string, error) {
			if customerID != "cust_1" || cardID != "card_7" {
				t.Fatalf("unexpected args: %s %s", customerID, cardID)
			}
			return "prod_9", nil
		},
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/customers/cust_1/debit-cards/card_7/main-account", "")
	c.SetParamNames("id", "cardId")
	c.SetParamValues("cust_1", "card_7")

	if err := h.DebitCardMainAccount(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["productId"] != "prod_9" {
		t.Errorf("unexpected product id: %q", body["productId"])
	}
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

func TestProductOpsHandler_Pay_TargetFromPath(t *testing.T) {
	h := NewProductOpsHandler(nil, nil, &stubPaymentService{
		fn: func(_ context.Context, customerID string, in ports.PaymentInput) (*ports.PaymentResult, error) {
			if customerID != "cust_1" {
				t.Fatalf("unexpected customer id %q", customerID)
			}
			if in.TargetProductID != "prod_9" || in.Amount != 150 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.PaymentResult{Status: "COMPLETED"}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/v1/products/prod_9/pay?customerId=cust_1",
		`{"amount":150}`)
	c.SetParamNames("productId")
	c.SetParamValues("prod_9")

	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result ports.PaymentResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if result.Status != "COMPLETED" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestProductOpsHandler_Pay_FailedResultStillRenders(t *testing.T) {
	h := NewProductOpsHandler(nil, nil, &stubPaymentService{
		fn: func(_ context.Context, _ string, _ ports.PaymentInput) (*ports.PaymentResult, error) {
			return &ports.PaymentResult{Status: "FAILED", Message: "product service unavailable"}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/v1/products/prod_9/pay", `{"amount":100}`)
	c.SetParamNames("productId")
	c.SetParamValues("prod_9")

	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var result ports.PaymentResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if result.Status != "FAILED" {
		t.Errorf("expected a FAILED result body, got %+v", result)
	}
}

func TestProductOpsHandler_Pay_RejectsNonPositiveAmount(t *testing.T) {
	h := NewProductOpsHandler(nil, nil, &stubPaymentService{
		fn: func(_ context.Context, _ string, _ ports.PaymentInput) (*ports.PaymentResult, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/v1/products/prod_9/pay", `{"amount":0}`)
	c.SetParamNames("productId")
	c.SetParamValues("prod_9")

	err := h.Pay(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected a 400 HTTPError, got %v", err)
	}
}
