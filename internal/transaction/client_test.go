package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"pixdoacao/internal/domain"
)

type captureTransport struct {
	responses map[string]responseStub
	lastPath  string
	lastBody  []byte
	err       error
}

type responseStub struct {
	status int
	body   []byte
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{responses: map[string]responseStub{}}
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.lastPath = req.URL.Path
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
	}
	stub, ok := c.responses[req.URL.Path]
	if !ok {
		stub = responseStub{status: http.StatusNotFound, body: []byte("not found")}
	}
	return &http.Response{
		StatusCode: stub.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(stub.body)),
	}, nil
}

func (c *captureTransport) setJSON(path string, status int, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{status: status, body: body}
}

func TestRequestPaymentCodeSendsMinorUnits(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("/create-transaction", http.StatusOK, map[string]any{"id": "tx-1", "qrcode": "000201PIXCODE"})
	client := NewClient(Options{BaseURL: "https://checkout.example.com/", HTTPClient: &http.Client{Transport: transport}})

	code, err := client.RequestPaymentCode(context.Background(), 20)
	if err != nil {
		t.Fatalf("RequestPaymentCode() error: %v", err)
	}
	if transport.lastPath != "/create-transaction" {
		t.Fatalf("path = %q", transport.lastPath)
	}
	var payload map[string]any
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["amount"] != float64(2000) {
		t.Fatalf("amount = %v, want 2000", payload["amount"])
	}
	want := domain.PaymentCode{Code: "000201PIXCODE", ExpiresIn: 900}
	if code != want {
		t.Fatalf("RequestPaymentCode() = %+v, want %+v", code, want)
	}
}

func TestCreateTransactionNumericID(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSON("/create-transaction", http.StatusCreated, map[string]any{"id": 42, "qrcode": "abc"})
	client := NewClient(Options{HTTPClient: &http.Client{Transport: transport}})

	tx, err := client.CreateTransaction(context.Background(), 3000)
	if err != nil {
		t.Fatalf("CreateTransaction() error: %v", err)
	}
	if tx.ID != "42" || tx.QRCode != "abc" {
		t.Fatalf("CreateTransaction() = %+v", tx)
	}
}

func TestCreateTransactionFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(c *captureTransport)
		invalid bool
	}{
		{
			name:  "server error",
			setup: func(c *captureTransport) { c.setJSON("/create-transaction", http.StatusBadGateway, map[string]any{"error": "upstream down"}) },
		},
		{
			name:    "rejected amount",
			setup:   func(c *captureTransport) { c.setJSON("/create-transaction", http.StatusBadRequest, map[string]any{"error": "Invalid amount"}) },
			invalid: true,
		},
		{
			name:  "missing qrcode",
			setup: func(c *captureTransport) { c.setJSON("/create-transaction", http.StatusOK, map[string]any{"id": "tx"}) },
		},
		{
			name: "garbage body",
			setup: func(c *captureTransport) {
				c.responses["/create-transaction"] = responseStub{status: http.StatusOK, body: []byte("<html>")}
			},
		},
		{
			name:  "transport error",
			setup: func(c *captureTransport) { c.err = errors.New("dial tcp: connection refused") },
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			transport := newCaptureTransport()
			tc.setup(transport)
			client := NewClient(Options{HTTPClient: &http.Client{Transport: transport}})
			_, err := client.CreateTransaction(context.Background(), 2000)
			if !errors.Is(err, domain.ErrNetwork) {
				t.Fatalf("CreateTransaction() error = %v, want ErrNetwork", err)
			}
			if got := errors.Is(err, domain.ErrInvalidAmount); got != tc.invalid {
				t.Fatalf("errors.Is(err, ErrInvalidAmount) = %v, want %v", got, tc.invalid)
			}
		})
	}
}

func TestCreateTransactionRejectsNonPositive(t *testing.T) {
	transport := newCaptureTransport()
	client := NewClient(Options{HTTPClient: &http.Client{Transport: transport}})
	if _, err := client.CreateTransaction(context.Background(), 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("CreateTransaction(0) error = %v, want ErrInvalidAmount", err)
	}
	if transport.lastPath != "" {
		t.Fatalf("no request expected, got %q", transport.lastPath)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Code: 500, Message: "Internal server error"}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "Internal server error") {
		t.Fatalf("Error() = %q", err.Error())
	}
}
