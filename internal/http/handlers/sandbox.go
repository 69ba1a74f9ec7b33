package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/money"
)

type createTransactionRequest struct {
	Amount int64 `json:"amount"`
}

type createTransactionResponse struct {
	ID     string `json:"id"`
	QRCode string `json:"qrcode"`
}

// SandboxCreateTransaction stands in for the external transaction service.
// The amount is in centavos.
func (a *App) SandboxCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	code, err := a.Generator.Generate(money.FromMinor(req.Amount))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			a.error(w, http.StatusBadRequest, "Invalid amount")
			return
		}
		a.internal(w, r, err)
		return
	}
	a.json(w, http.StatusOK, createTransactionResponse{ID: uuid.NewString(), QRCode: code.Code})
}
