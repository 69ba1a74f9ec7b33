package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"pixdoacao/internal/domain"
)

type generatePixRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type generatePixResponse struct {
	QRCode    string `json:"qrCode"`
	PixCode   string `json:"pixCode"`
	ExpiresIn int    `json:"expiresIn"`
}

// GeneratePix answers POST /generate-pix with a synthetic payment code.
func (a *App) GeneratePix(w http.ResponseWriter, r *http.Request) {
	var req generatePixRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	code, err := a.Generator.Generate(amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			a.error(w, http.StatusBadRequest, "Invalid amount")
			return
		}
		a.internal(w, r, err)
		return
	}
	a.json(w, http.StatusOK, generatePixResponse{
		QRCode:    code.QRImageURL,
		PixCode:   code.Code,
		ExpiresIn: code.ExpiresIn,
	})
}

// parseAmount accepts only a JSON number. Strings, booleans and null are rejected
// even when they spell a number.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, raw)
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	return amount, nil
}
