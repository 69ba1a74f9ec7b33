// Package transaction talks to the services that hand out PIX payment codes:
// the external transaction service and this repository's mock endpoint.
package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/infra"
	"pixdoacao/internal/money"
)

// DefaultBaseURL is the hosted transaction service.
const DefaultBaseURL = "https://api-checkout-one.vercel.app"

const maxResponseBytes = 1 << 20

// Options configures a Client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the external transaction service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

type createTransactionRequest struct {
	Amount int64 `json:"amount"`
}

type createTransactionResponse struct {
	ID     json.RawMessage `json:"id"`
	QRCode string          `json:"qrcode"`
}

// NewClient constructs a client with defaults for anything left unset.
func NewClient(opts Options) *Client {
	return &Client{
		baseURL:    baseURLOrDefault(opts.BaseURL),
		httpClient: httpClientOrDefault(opts.HTTPClient, opts.RequestTimeout),
		logger:     loggerOrDiscard(opts.Logger),
	}
}

// CreateTransaction opens a transaction for amountMinor centavos and returns
// the service's id and payment code. Every failure wraps domain.ErrNetwork.
func (c *Client) CreateTransaction(ctx context.Context, amountMinor int64) (*domain.Transaction, error) {
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: %d centavos", domain.ErrInvalidAmount, amountMinor)
	}
	raw, err := postJSON(ctx, c.httpClient, c.baseURL+"/create-transaction", createTransactionRequest{Amount: amountMinor})
	if err != nil {
		return nil, err
	}
	var decoded createTransactionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrNetwork, err)
	}
	code := strings.TrimSpace(decoded.QRCode)
	if code == "" {
		return nil, fmt.Errorf("%w: empty qrcode in response", domain.ErrNetwork)
	}
	tx := &domain.Transaction{ID: rawID(decoded.ID), QRCode: code}
	c.logger.Debug().Str("transaction_id", tx.ID).Int64("amount_minor", amountMinor).Msg("transaction created")
	return tx, nil
}

// RequestPaymentCode converts amount (whole reais) to centavos, creates a
// transaction and normalizes it into a payment code. The service sends no
// image, so QRImageURL is empty and clients render the code themselves.
func (c *Client) RequestPaymentCode(ctx context.Context, amount int64) (domain.PaymentCode, error) {
	minor, err := money.ToMinor(decimal.NewFromInt(amount))
	if err != nil {
		return domain.PaymentCode{}, err
	}
	tx, err := c.CreateTransaction(ctx, minor)
	if err != nil {
		return domain.PaymentCode{}, err
	}
	return domain.PaymentCode{Code: tx.QRCode, ExpiresIn: domain.DefaultExpiresIn}, nil
}

// postJSON sends payload and returns the body of a 2xx response.
func postJSON(ctx context.Context, client *http.Client, endpoint string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error != "" {
			return nil, &StatusError{Code: resp.StatusCode, Message: detail.Error}
		}
		return nil, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

// StatusError is a non-2xx answer. It matches domain.ErrNetwork, and
// domain.ErrInvalidAmount as well when the status is 400.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("transaction service: status %d", e.Code)
	}
	return fmt.Sprintf("transaction service: status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	if target == domain.ErrNetwork {
		return true
	}
	return target == domain.ErrInvalidAmount && e.Code == http.StatusBadRequest
}

// rawID accepts both string and numeric ids.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func baseURLOrDefault(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}

func httpClientOrDefault(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func loggerOrDiscard(l *infra.Logger) *infra.Logger {
	if l != nil {
		return l
	}
	return infra.DiscardLogger()
}
