package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pixdoacao/internal/adapter/repo"
	"pixdoacao/internal/domain"
	"pixdoacao/internal/pix"
)

func newTestApp(campaign domain.CampaignRepository) *App {
	if campaign == nil {
		campaign = repo.NewStaticCampaignRepository(domain.DefaultCampaignStats)
	}
	return NewApp(nil, pix.NewGenerator(pix.DefaultMerchant), campaign)
}

func TestGeneratePix_RejectsInvalidAmounts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing amount", body: `{}`},
		{name: "null amount", body: `{"amount":null}`},
		{name: "zero", body: `{"amount":0}`},
		{name: "negative", body: `{"amount":-10}`},
		{name: "not a number", body: `{"amount":"abc"}`},
		{name: "boolean", body: `{"amount":true}`},
		{name: "quoted number", body: `{"amount":"1000"}`},
		{name: "array", body: `{"amount":[20]}`},
		{name: "malformed json", body: `{"amount":`},
		{name: "empty body", body: ``},
	}

	app := newTestApp(nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/generate-pix", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			app.GeneratePix(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var payload map[string]any
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload["error"] != "Invalid amount" {
				t.Fatalf("error = %#v, want Invalid amount", payload["error"])
			}
			for _, key := range []string{"qrCode", "pixCode", "expiresIn"} {
				if _, ok := payload[key]; ok {
					t.Fatalf("unexpected %s in error response", key)
				}
			}
		})
	}
}

func TestGeneratePix_ReturnsPaymentCode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantAmount string
	}{
		{name: "whole reais", body: `{"amount":50}`, wantAmount: "540550.00"},
		{name: "centavos", body: `{"amount":20.5}`, wantAmount: "540520.50"},
		{name: "largest button", body: `{"amount":1000}`, wantAmount: "54071000.00"},
		{name: "sub-centavo rounds down", body: `{"amount":0.004}`, wantAmount: "54040.00"},
		{name: "smallest positive", body: `{"amount":0.001}`, wantAmount: "54040.00"},
		{name: "above one million", body: `{"amount":1000000.01}`, wantAmount: "54101000000.01"},
		{name: "five million", body: `{"amount":5000000}`, wantAmount: "54105000000.00"},
	}

	app := newTestApp(nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/generate-pix", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			app.GeneratePix(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
			}
			var payload generatePixResponse
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload.ExpiresIn != 900 {
				t.Fatalf("expiresIn = %d, want 900", payload.ExpiresIn)
			}
			if !strings.Contains(payload.PixCode, tc.wantAmount) {
				t.Fatalf("pixCode %q does not embed %q", payload.PixCode, tc.wantAmount)
			}
			if _, err := pix.Parse(payload.PixCode); err != nil {
				t.Fatalf("pixCode does not parse: %v", err)
			}
			if !strings.HasPrefix(payload.QRCode, "/placeholder.svg?height=300&width=300&query=") {
				t.Fatalf("qrCode = %q", payload.QRCode)
			}
		})
	}
}

func TestGeneratePix_IsDeterministic(t *testing.T) {
	app := newTestApp(nil)
	var codes []string
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		app.GeneratePix(rr, httptest.NewRequest(http.MethodPost, "/generate-pix", strings.NewReader(`{"amount":100}`)))
		var payload generatePixResponse
		if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		codes = append(codes, payload.PixCode)
	}
	if codes[0] != codes[1] {
		t.Fatalf("codes differ: %q vs %q", codes[0], codes[1])
	}
}

func TestGeneratePix_InternalErrorIsGeneric(t *testing.T) {
	tests := []struct {
		name string
		gen  *pix.Generator
		body string
	}{
		{name: "merchant field overflow", gen: pix.NewGenerator(pix.Merchant{Name: strings.Repeat("x", 100)}), body: `{"amount":20}`},
		{name: "amount field overflow", gen: pix.NewGenerator(pix.DefaultMerchant), body: `{"amount":10000000000}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := NewApp(nil, tc.gen, repo.NewStaticCampaignRepository(domain.DefaultCampaignStats))
			req := httptest.NewRequest(http.MethodPost, "/generate-pix", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			app.GeneratePix(rr, req)

			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500 (body %s)", rr.Code, rr.Body.String())
			}
			if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"Internal server error"}` {
				t.Fatalf("body = %s", got)
			}
			for _, leak := range []string{"pix:", "internal error", "too long", "longer than"} {
				if strings.Contains(rr.Body.String(), leak) {
					t.Fatalf("error detail %q leaked: %s", leak, rr.Body.String())
				}
			}
		})
	}
}
