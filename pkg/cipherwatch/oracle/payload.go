package oracle

import (
	"unicode/utf8"

	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
)

// Callback payload wire shapes. A risk evaluation resolves to a single
// boolean byte; a content reveal resolves to UTF-8 text.

// EncodeBool renders a risk-evaluation result as its single-byte payload.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{0x01}
	}
	return []byte{0x00}
}

// DecodeBool parses a risk-evaluation payload. Anything but exactly one byte
// holding 0x00 or 0x01 fails with ErrMalformedPayload.
func DecodeBool(payload []byte) (bool, error) {
	if len(payload) != 1 || payload[0] > 0x01 {
		return false, cipherwatch.ErrMalformedPayload
	}
	return payload[0] == 0x01, nil
}

// EncodeText renders a content-reveal result as its payload bytes.
func EncodeText(s string) []byte {
	return []byte(s)
}

// DecodeText parses a content-reveal payload. Non-UTF-8 payloads fail with
// ErrMalformedPayload. The empty payload is valid: revealed content may be
// the empty string.
func DecodeText(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", cipherwatch.ErrMalformedPayload
	}
	return string(payload), nil
}
