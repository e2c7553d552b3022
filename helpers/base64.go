package helpers

import (
	"encoding/base64"
	"strings"
)

// Base64Enc encodes b with standard padded base64, the form the registration
// endpoints emit.
func Base64Enc(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Base64DecodeNonPadded decodes standard base64 with or without padding.
func Base64DecodeNonPadded(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if len(s)%4 != 0 {
		s = s + strings.Repeat("=", 4-len(s)%4)
	}
	return base64.StdEncoding.DecodeString(s)
}

// Base64EncWithoutPadding encodes b with standard base64 and strips the padding
func Base64EncWithoutPadding(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}
