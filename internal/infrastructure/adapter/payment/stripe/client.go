package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/config"
	"github.com/google/uuid"
)

// Client implements the payment.Gateway port against the Stripe HTTP API.
// All write requests carry an idempotency key, so a retried network failure
// can never double-charge.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	secretKey     string
	webhookSecret string
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
}

// NewClient creates a Stripe gateway client
func NewClient(cfg *config.StripeConfig, logger coreport.Logger, timeProvider coreport.TimeProvider) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
		timeProvider:  timeProvider,
	}
}

// apiIntent is the wire shape of a Stripe payment intent
type apiIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	LatestCharge string            `json:"latest_charge"`
	Metadata     map[string]string `json:"metadata"`
}

// apiTransfer is the wire shape of a Stripe transfer
type apiTransfer struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// apiError is the wire shape of a Stripe error response
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent opens a payment intent for the given amount in minor units
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata payment.Metadata) (*payment.Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out apiIntent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &out); err != nil {
		return nil, err
	}

	c.logger.Info("Payment intent created", map[string]any{
		"intent_id": out.ID,
		"amount":    out.Amount,
		"currency":  out.Currency,
	})
	return intentFromAPI(&out), nil
}

// RetrieveIntent fetches the authoritative state of an intent
func (c *Client) RetrieveIntent(ctx context.Context, id string) (*payment.Intent, error) {
	var out apiIntent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return intentFromAPI(&out), nil
}

// CreateTransfer opens a payout transfer to a seller's connected account
func (c *Client) CreateTransfer(ctx context.Context, amountMinor int64, currency string, destination string, metadata payment.Metadata) (*payment.Transfer, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("destination", destination)
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out apiTransfer
	if err := c.do(ctx, http.MethodPost, "/v1/transfers", form, &out); err != nil {
		return nil, err
	}

	c.logger.Info("Transfer created", map[string]any{
		"transfer_id": out.ID,
		"amount":      out.Amount,
		"destination": destination,
	})
	return transferFromAPI(&out), nil
}

// do executes one Stripe API call and decodes the response into out
func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to build request: %s", errs.ErrGateway, err.Error())
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrGateway, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %s", errs.ErrGateway, err.Error())
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.Unmarshal(respBody, &apiErr)
		c.logger.Warn("Gateway request rejected", map[string]any{
			"path":    path,
			"status":  resp.StatusCode,
			"type":    apiErr.Error.Type,
			"code":    apiErr.Error.Code,
			"message": apiErr.Error.Message,
		})
		if apiErr.Error.Message != "" {
			return fmt.Errorf("%w: %s", errs.ErrGateway, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: unexpected status %d", errs.ErrGateway, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: malformed response: %s", errs.ErrGateway, err.Error())
	}
	return nil
}

func intentFromAPI(in *apiIntent) *payment.Intent {
	return &payment.Intent{
		ID:           in.ID,
		ClientSecret: in.ClientSecret,
		Status:       in.Status,
		AmountMinor:  in.Amount,
		Currency:     in.Currency,
		ChargeID:     in.LatestCharge,
		Metadata:     payment.Metadata(in.Metadata),
	}
}

func transferFromAPI(in *apiTransfer) *payment.Transfer {
	return &payment.Transfer{
		ID:          in.ID,
		AmountMinor: in.Amount,
		Metadata:    payment.Metadata(in.Metadata),
	}
}
