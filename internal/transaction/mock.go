package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/infra"
)

// MockGateway requests codes from this service's POST /generate-pix endpoint.
type MockGateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

var errEmptyCode = errors.New("empty pixCode in response")

type generatePixRequest struct {
	Amount int64 `json:"amount"`
}

type generatePixResponse struct {
	QRCode    string `json:"qrCode"`
	PixCode   string `json:"pixCode"`
	ExpiresIn int    `json:"expiresIn"`
}

// NewMockGateway builds a gateway against the donation API at opts.BaseURL.
func NewMockGateway(opts Options) *MockGateway {
	return &MockGateway{
		baseURL:    baseURLOrDefault(opts.BaseURL),
		httpClient: httpClientOrDefault(opts.HTTPClient, opts.RequestTimeout),
		logger:     loggerOrDiscard(opts.Logger),
	}
}

// RequestPaymentCode asks the mock endpoint for a code. The endpoint takes
// whole reais, so no minor-unit conversion happens here.
func (g *MockGateway) RequestPaymentCode(ctx context.Context, amount int64) (domain.PaymentCode, error) {
	if amount <= 0 {
		return domain.PaymentCode{}, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	raw, err := postJSON(ctx, g.httpClient, g.baseURL+"/generate-pix", generatePixRequest{Amount: amount})
	if err != nil {
		return domain.PaymentCode{}, err
	}
	var decoded generatePixResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.PaymentCode{}, fmt.Errorf("%w: decode response: %v", domain.ErrNetwork, err)
	}
	code := strings.TrimSpace(decoded.PixCode)
	if code == "" {
		return domain.PaymentCode{}, fmt.Errorf("%w: %v", domain.ErrNetwork, errEmptyCode)
	}
	expires := decoded.ExpiresIn
	if expires <= 0 {
		expires = domain.DefaultExpiresIn
	}
	g.logger.Debug().Int64("amount", amount).Int("expires_in", expires).Msg("mock pix received")
	return domain.PaymentCode{Code: code, QRImageURL: absoluteURL(decoded.QRCode), ExpiresIn: expires}, nil
}

// absoluteURL keeps only absolute http(s) image URLs. The endpoint answers
// with a relative placeholder path that nothing serves, so the client
// renders the code locally instead.
func absoluteURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
