package checkout

import (
	"fmt"
	"io"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/text/language"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/money"
)

// QRPattern renders code as a terminal QR pattern using block characters.
// Error correction is level H, with the standard quiet zone.
func QRPattern(code string) (string, error) {
	q, err := qrcode.New(code, qrcode.Highest)
	if err != nil {
		return "", fmt.Errorf("checkout: encode qr: %w", err)
	}
	return q.ToString(false), nil
}

// Render writes a text rendition of the donation buttons and the payment panel.
func Render(w io.Writer, s State, tag language.Tag) error {
	var b strings.Builder

	b.WriteString("Escolha um valor:\n")
	for i, amount := range domain.DonationAmounts() {
		label := money.Label(tag, amount*100)
		if s.LoadingAmount(amount) {
			label = "Carregando..."
		}
		fmt.Fprintf(&b, "  [%d] %s\n", i+1, label)
	}

	switch s.Phase {
	case PhaseLoading:
		fmt.Fprintf(&b, "\nGerando código PIX de %s...\n", money.Label(tag, s.Amount*100))
	case PhaseFailed:
		fmt.Fprintf(&b, "\n%s\n", s.Reason)
	case PhaseSuccess:
		b.WriteString("\nQR Code pronto para pagamento\n")
		fmt.Fprintf(&b, "O código expira em: %s\n", s.Countdown())
		if s.Expired() {
			b.WriteString("O tempo acabou. Gere um novo código se o pagamento não foi concluído.\n")
		}
		fmt.Fprintf(&b, "\n%s\n\n", s.Record.Code)
		if s.Copied {
			b.WriteString("[c] COPIADO\n")
		} else {
			b.WriteString("[c] COPIAR CÓDIGO\n")
		}
		b.WriteString("\nEscaneie o QR CODE ou copie o código\n")
		if s.Record.QRImageURL != "" {
			fmt.Fprintf(&b, "%s\n", s.Record.QRImageURL)
		} else {
			pattern, err := QRPattern(s.Record.Code)
			if err != nil {
				return err
			}
			b.WriteString(pattern)
		}
		b.WriteString("[x] Fechar\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
