package payment

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// APIError is the error envelope returned by the payment API.
type APIError struct {
	Status int    `json:"-"`
	Type   string `json:"type"`
	Code   string `json:"code"`
	Detail string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment api %d: %s (%s)", e.Status, e.Detail, e.Code)
	}
	return fmt.Sprintf("payment api %d: %s", e.Status, e.Detail)
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

type customerList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type checkoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// StripeClient talks to the Stripe REST API with form-encoded requests.
type StripeClient struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewStripeClient creates client authenticated with secretKey.
func NewStripeClient(baseURL, secretKey string, logger *slog.Logger) (*StripeClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("payment secret key must be provided")
	}

	client := resty.New().
		SetBaseURL(parsed.String()).
		SetAuthToken(secretKey).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second)

	return &StripeClient{http: client, logger: logger}, nil
}

// FindCustomer returns the id of the first customer registered with email.
func (c *StripeClient) FindCustomer(ctx context.Context, email string) (string, error) {
	var (
		result customerList
		apiErr errorEnvelope
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"email": email, "limit": "1"}).
		SetResult(&result).
		SetError(&apiErr).
		Get("/v1/customers")
	if err != nil {
		return "", fmt.Errorf("list customers: %w", err)
	}
	if resp.IsError() {
		apiErr.Error.Status = resp.StatusCode()
		return "", &apiErr.Error
	}
	if len(result.Data) == 0 {
		return "", nil
	}
	return result.Data[0].ID, nil
}

// CreateCheckoutSession opens a one-item hosted payment page. Requests carry an
// idempotency key so client retries never open a second session.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, req model.CheckoutSessionRequest) (*model.CheckoutSession, error) {
	form := map[string]string{
		"mode":        "payment",
		"success_url": req.SuccessURL,
		"cancel_url":  req.CancelURL,

		"line_items[0][quantity]":                       "1",
		"line_items[0][price_data][currency]":           req.Offering.Currency,
		"line_items[0][price_data][unit_amount]":        strconv.FormatInt(req.Offering.Amount, 10),
		"line_items[0][price_data][product_data][name]": req.Offering.Name,

		"metadata[offering_id]": req.Offering.ID,
	}
	switch {
	case req.CustomerID != "":
		form["customer"] = req.CustomerID
	case req.CustomerEmail != "":
		form["customer_email"] = req.CustomerEmail
		form["customer_creation"] = "always"
	default:
		form["customer_creation"] = "always"
	}

	var (
		result checkoutSession
		apiErr errorEnvelope
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(form).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1/checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	if resp.IsError() {
		apiErr.Error.Status = resp.StatusCode()
		c.logger.Error("checkout session rejected",
			slog.Int("status", resp.StatusCode()),
			slog.String("type", apiErr.Error.Type),
			slog.String("code", apiErr.Error.Code),
		)
		return nil, &apiErr.Error
	}
	if result.ID == "" || result.URL == "" {
		return nil, fmt.Errorf("create checkout session: incomplete response")
	}
	return &model.CheckoutSession{ID: result.ID, URL: result.URL}, nil
}
