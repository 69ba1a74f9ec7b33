package domain

// DefaultExpiresIn is how long, in seconds, a payment code stays payable.
const DefaultExpiresIn = 900

// PaymentCode is the normalized payment-code record shown to a donor. It is
// created from a successful transaction-service response and never mutated.
type PaymentCode struct {
	// Code is the PIX copy-and-paste string.
	Code string
	// QRImageURL points at a pre-rendered QR image. Empty means the client
	// renders Code locally.
	QRImageURL string
	// ExpiresIn is the lifetime in seconds.
	ExpiresIn int
}

// Transaction is what the external transaction service returns.
type Transaction struct {
	ID     string
	QRCode string
}

var donationAmounts = []int64{20, 30, 40, 50, 100, 200, 300, 500, 1000}

// DonationAmounts returns the selectable amounts in whole reais, in display order.
func DonationAmounts() []int64 {
	return append([]int64(nil), donationAmounts...)
}

// IsDonationAmount reports whether amount is one of the selectable amounts.
func IsDonationAmount(amount int64) bool {
	for _, a := range donationAmounts {
		if a == amount {
			return true
		}
	}
	return false
}
