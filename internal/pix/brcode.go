package pix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EMV merchant-presented QR field identifiers used by BR Code.
const (
	fieldPayloadFormat     = "00"
	fieldInitiationMethod  = "01"
	fieldMerchantAccount   = "26"
	fieldCategoryCode      = "52"
	fieldCurrency          = "53"
	fieldAmount            = "54"
	fieldCountryCode       = "58"
	fieldMerchantName      = "59"
	fieldMerchantCity      = "60"
	fieldAdditionalData    = "62"
	fieldCRC               = "63"
	subfieldGUI            = "00"
	subfieldLocationURL    = "25"
	subfieldTxID           = "05"
	currencyBRL            = "986"
	maxFieldLength         = 99
	maxAmountLength        = 13
	crcFieldPrefix         = fieldCRC + "04"
	initiationDynamicValue = "12"
)

var (
	ErrMalformedCode = errors.New("pix: malformed code")
	ErrChecksum      = errors.New("pix: checksum mismatch")
)

type field struct {
	id    string
	value string
}

func encodeFields(fields ...field) (string, error) {
	var b strings.Builder
	for _, f := range fields {
		if len(f.value) > maxFieldLength {
			return "", fmt.Errorf("pix: field %s too long (%d)", f.id, len(f.value))
		}
		b.WriteString(f.id)
		b.WriteString(fmt.Sprintf("%02d", len(f.value)))
		b.WriteString(f.value)
	}
	return b.String(), nil
}

// withCRC appends the CRC field, whose checksum covers the payload and the
// CRC field's own id and length.
func withCRC(payload string) string {
	payload += crcFieldPrefix
	return payload + fmt.Sprintf("%04X", crc16(payload))
}

// crc16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF).
func crc16(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Parse splits a BR Code into its top-level fields after verifying the
// checksum. Nested templates (26, 62) are returned raw; use ParseTemplate on them.
func Parse(code string) (map[string]string, error) {
	if len(code) < len(crcFieldPrefix)+4 {
		return nil, ErrMalformedCode
	}
	body, sum := code[:len(code)-4], code[len(code)-4:]
	if !strings.HasSuffix(body, crcFieldPrefix) {
		return nil, fmt.Errorf("%w: missing crc field", ErrMalformedCode)
	}
	if want := fmt.Sprintf("%04X", crc16(body)); !strings.EqualFold(want, sum) {
		return nil, fmt.Errorf("%w: got %s want %s", ErrChecksum, sum, want)
	}
	return ParseTemplate(code)
}

// ParseTemplate decodes a sequence of id/length/value fields without any checksum check.
func ParseTemplate(data string) (map[string]string, error) {
	fields := make(map[string]string)
	for i := 0; i < len(data); {
		if i+4 > len(data) {
			return nil, fmt.Errorf("%w: truncated header at %d", ErrMalformedCode, i)
		}
		id := data[i : i+2]
		n, err := strconv.Atoi(data[i+2 : i+4])
		if err != nil {
			return nil, fmt.Errorf("%w: bad length for field %s", ErrMalformedCode, id)
		}
		start := i + 4
		if start+n > len(data) {
			return nil, fmt.Errorf("%w: field %s overruns payload", ErrMalformedCode, id)
		}
		fields[id] = data[start : start+n]
		i = start + n
	}
	return fields, nil
}
