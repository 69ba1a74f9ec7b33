// Package pix fabricates PIX BR Code payment strings. No payment network is
// contacted; codes are a pure function of the amount and the merchant data.
package pix

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/money"
)

// Merchant holds the static payee data embedded in every generated code.
type Merchant struct {
	LocationURL string
	Name        string
	City        string
	TxID        string
}

// DefaultMerchant is the payee used by the mock endpoint.
var DefaultMerchant = Merchant{
	LocationURL: "pix.stone.com.br/pix/v2/ecedab53-d0b6-438f-aac8-e9e339ddda02",
	Name:        "Mangoty Tecnologia Ltda",
	City:        "RIO DE JANEIRO",
	TxID:        "934490f1a7b03a7c5de2a34e6",
}

const placeholderQRPath = "/placeholder.svg?height=300&width=300&query="

// Generator builds payment codes for a fixed merchant.
type Generator struct {
	merchant Merchant
}

// NewGenerator returns a Generator for m.
func NewGenerator(m Merchant) *Generator {
	return &Generator{merchant: m}
}

// Generate returns the payment code for amount (in reais). It fails with
// domain.ErrInvalidAmount when the amount is not positive, and with
// domain.ErrInternal when a field overflows the BR Code limits.
func (g *Generator) Generate(amount decimal.Decimal) (domain.PaymentCode, error) {
	if !amount.IsPositive() {
		return domain.PaymentCode{}, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount.String())
	}
	// Amounts under half a centavo render as 0.00.
	code, err := g.encode(money.Fixed(amount))
	if err != nil {
		return domain.PaymentCode{}, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	return domain.PaymentCode{
		Code:       code,
		QRImageURL: placeholderQRPath + url.QueryEscape("QR Code PIX payment "+amount.String()),
		ExpiresIn:  domain.DefaultExpiresIn,
	}, nil
}

func (g *Generator) encode(amount string) (string, error) {
	if len(amount) > maxAmountLength {
		return "", fmt.Errorf("pix: amount %s longer than %d characters", amount, maxAmountLength)
	}
	account, err := encodeFields(
		field{subfieldGUI, "br.gov.bcb.pix"},
		field{subfieldLocationURL, g.merchant.LocationURL},
	)
	if err != nil {
		return "", err
	}
	additional, err := encodeFields(field{subfieldTxID, g.merchant.TxID})
	if err != nil {
		return "", err
	}
	payload, err := encodeFields(
		field{fieldPayloadFormat, "01"},
		field{fieldInitiationMethod, initiationDynamicValue},
		field{fieldMerchantAccount, account},
		field{fieldCategoryCode, "0000"},
		field{fieldCurrency, currencyBRL},
		field{fieldAmount, amount},
		field{fieldCountryCode, "BR"},
		field{fieldMerchantName, g.merchant.Name},
		field{fieldMerchantCity, g.merchant.City},
		field{fieldAdditionalData, additional},
	)
	if err != nil {
		return "", err
	}
	return withCRC(payload), nil
}
