// Package httpapi implements the remote ports against the voucher
// service's JSON HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voucherdesk/internal/core"
	"voucherdesk/internal/remote"
)

// TokenSource supplies the bearer credential for authenticated calls.
// An empty token with a nil error means no credential is stored.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// APIError is a non-2xx response from the service. Message carries the
// server-provided message when the body had one, else a generic fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the voucher service. All authenticated calls fetch the
// token per request so a re-login is picked up without rebuilding the
// client.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Ensure interface conformance
var (
	_ remote.VoucherLister    = (*Client)(nil)
	_ remote.VoucherGenerator = (*Client)(nil)
	_ remote.PaymentInitiator = (*Client)(nil)
	_ remote.PaymentLister    = (*Client)(nil)
	_ remote.Authenticator    = (*Client)(nil)
)

// New creates a client for the service at baseURL. A zero timeout
// disables client-side timeouts and leaves cancellation to the
// caller's context; pass a positive duration to bound requests.
func New(baseURL string, tokens TokenSource, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing API base URL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}, nil
}

// ListVouchers fetches the full voucher collection.
func (c *Client) ListVouchers(ctx context.Context) ([]core.Voucher, error) {
	var records []voucherRecord
	if err := c.do(ctx, http.MethodGet, "/vouchers", nil, &records); err != nil {
		return nil, err
	}
	vouchers := make([]core.Voucher, 0, len(records))
	for _, r := range records {
		vouchers = append(vouchers, r.toDomain())
	}
	return vouchers, nil
}

// GenerateVoucher asks the service to create a voucher. The response may
// or may not echo the created record.
func (c *Client) GenerateVoucher(ctx context.Context, req remote.GenerateVoucherRequest) (*core.Voucher, error) {
	body := generateVoucherBody{
		AmountMB:       req.AmountMB,
		ExpiresDays:    req.ExpiresDays,
		Phone:          req.Phone,
		PackageType:    string(req.PackageType),
		ExpirationDate: req.ExpirationDate.UTC().Format(time.RFC3339),
	}
	var resp generateVoucherResponse
	if err := c.do(ctx, http.MethodPost, "/vouchers/generate", body, &resp); err != nil {
		return nil, err
	}
	if resp.Voucher == nil {
		return nil, nil
	}
	v := resp.Voucher.toDomain()
	return &v, nil
}

// InitPayment initiates a mobile-money payment. The success body is
// opaque and discarded.
func (c *Client) InitPayment(ctx context.Context, req remote.InitPaymentRequest) error {
	body := initPaymentBody{
		Gateway:     string(req.Gateway),
		Amount:      json.Number(req.Amount.Decimal()),
		PhoneNumber: req.PhoneNumber,
		VoucherCode: req.VoucherCode,
	}
	return c.do(ctx, http.MethodPost, "/payments/init", body, nil)
}

// ListPayments fetches the caller's payment collection.
func (c *Client) ListPayments(ctx context.Context) ([]core.Payment, error) {
	var records []paymentRecord
	if err := c.do(ctx, http.MethodGet, "/payments/my", nil, &records); err != nil {
		return nil, err
	}
	payments := make([]core.Payment, 0, len(records))
	for _, r := range records {
		p, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", r.ID, err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// Login authenticates with email and password. It is the one call made
// without a credential.
func (c *Client) Login(ctx context.Context, email, password string) (remote.Session, error) {
	body := loginBody{Email: email, Password: password}
	var resp loginResponse
	if err := c.doUnauthenticated(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return remote.Session{}, err
	}
	return remote.Session{
		Token:  resp.Token,
		UserID: resp.User.ID,
		Email:  resp.User.Email,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		return remote.ErrNoCredential
	}
	return c.roundTrip(ctx, method, path, token, body, out)
}

func (c *Client) doUnauthenticated(ctx context.Context, method, path string, body, out any) error {
	return c.roundTrip(ctx, method, path, "", body, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		slog.DebugContext(ctx, "API call failed",
			"method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError extracts the optional {message} body of a non-2xx response.
func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP error %d", resp.StatusCode),
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
