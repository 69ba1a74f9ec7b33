// Package money converts and formats BRL amounts.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"pixdoacao/internal/domain"
)

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// ToMinor converts a reais amount to centavos, rounding half away from zero.
// The result must be at least one centavo and fit in an int64.
func ToMinor(amount decimal.Decimal) (int64, error) {
	minor := amount.Round(2).Shift(2)
	if !minor.IsPositive() {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount.String())
	}
	if minor.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("%w: %s out of range", domain.ErrInvalidAmount, amount.String())
	}
	return minor.IntPart(), nil
}

// FromMinor converts centavos to reais.
func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// Fixed renders amount with exactly two decimals and a dot separator, the
// format used inside payment codes.
func Fixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Tag maps a request locale ("pt", "en") to the language used for display.
func Tag(locale string) language.Tag {
	if locale == "pt" {
		return language.BrazilianPortuguese
	}
	return language.English
}

// Currency is the only currency the service handles.
var Currency = currency.BRL

// BRL is written "R$" in every locale we serve.
const symbol = "R$"

// Label formats centavos as a localized BRL label, for example "R$ 1.000,00" in pt-BR.
func Label(tag language.Tag, minor int64) string {
	p := message.NewPrinter(tag)
	value, _ := FromMinor(minor).Float64()
	return symbol + " " + p.Sprint(number.Decimal(value, number.Scale(2)))
}
