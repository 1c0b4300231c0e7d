// Package productclient implements the HTTP contract with the external
// product service. The client is deliberately dumb transport: timeouts,
// breaker gating, and failure translation belong to the resilience wrapper
// the services route every call through.
package productclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bankcore/customer-service/internal/core/domain"
	"github.com/bankcore/customer-service/internal/core/ports"
)

// Client talks to the external product service over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the given base URL. The underlying http.Client
// carries no timeout of its own; per-call deadlines arrive via context from
// the resilience wrapper.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// GetByCustomer returns the live portfolio for a customer.
func (c *Client) GetByCustomer(ctx context.Context, customerID string) ([]domain.Product, error) {
	var products []domain.Product
	err := c.do(ctx, http.MethodGet, "/"+url.PathEscape(customerID), nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Create registers a new product for a customer.
func (c *Client) Create(ctx context.Context, in ports.CreateProductInput) error {
	return c.do(ctx, http.MethodPost, "/", in, nil)
}

// Delete removes a product association.
func (c *Client) Delete(ctx context.Context, productID, customerID string) error {
	path := fmt.Sprintf("/%s/customers/%s", url.PathEscape(productID), url.PathEscape(customerID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Report fetches product report records for a date range.
func (c *Client) Report(ctx context.Context, from, to time.Time) ([]ports.ProductReport, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))

	var records []ports.ProductReport
	if err := c.do(ctx, http.MethodGet, "/products/report?"+q.Encode(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AssociateDebitCard links a debit card to the customer's accounts.
func (c *Client) AssociateDebitCard(ctx context.Context, customerID string, in ports.DebitCardAssociation) (string, error) {
	path := fmt.Sprintf("/customers/%s/debit-cards/associate", url.PathEscape(customerID))
	var result string
	if err := c.do(ctx, http.MethodPost, path, in, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DebitCardBalance returns the main-account balance behind a debit card.
func (c *Client) DebitCardBalance(ctx context.Context, productID, cardID string) (*ports.DebitCardBalance, error) {
	path := fmt.Sprintf("/products/%s/debit-cards/%s/balance", url.PathEscape(productID), url.PathEscape(cardID))
	var balance ports.DebitCardBalance
	if err := c.do(ctx, http.MethodGet, path, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// MainAccountID resolves the main account product behind a debit card.
func (c *Client) MainAccountID(ctx context.Context, customerID, cardID string) (string, error) {
	path := fmt.Sprintf("/products/%s/debit-cards/%s/main-account", url.PathEscape(customerID), url.PathEscape(cardID))
	var accountID string
	if err := c.do(ctx, http.MethodGet, path, nil, &accountID); err != nil {
		return "", err
	}
	return accountID, nil
}

// Pay executes a payment towards a credit product.
func (c *Client) Pay(ctx context.Context, in ports.PaymentInput) (*ports.PaymentResult, error) {
	path := fmt.Sprintf("/products/%s/pay", url.PathEscape(in.TargetProductID))
	var result ports.PaymentResult
	if err := c.do(ctx, http.MethodPost, path, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do issues one JSON round trip. A nil out discards the response body; a
// *string out accepts a plain-text body as well as a JSON string.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("product service returned %d for %s %s", resp.StatusCode, method, path)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	if s, ok := out.(*string); ok {
		if err := json.Unmarshal(raw, s); err != nil {
			*s = string(raw)
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
