// Package encoding provides text encoding utilities for the binary export
// formats.
package encoding

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// IsNFC reports whether s is already in Unicode normalization form C.
// Text is written as given; a name in another form still encodes, but a
// runtime comparing bytes will not match it against its composed spelling.
func IsNFC(s string) bool {
	return norm.NFC.IsNormalString(s)
}

// FixedField encodes s into a NUL-padded field of exactly size bytes.
// The bytes of s are kept as is and cut on a rune boundary if they do not
// fit. The second return value reports whether anything was cut.
func FixedField(s string, size int) ([]byte, bool) {
	field := make([]byte, size)
	if len(s) <= size {
		copy(field, s)
		return field, false
	}

	cut := size
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	copy(field, s[:cut])
	return field, true
}

// ReadFixedField extracts the string stored in a NUL-padded field.
func ReadFixedField(data []byte) string {
	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		return string(data[:idx])
	}
	return string(data)
}
