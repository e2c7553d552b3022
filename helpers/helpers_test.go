package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "550125", NormalizeCode("550-125"))
	assert.Equal(t, "550125", NormalizeCode(" 550 125\n"))
	assert.Equal(t, "550125", NormalizeCode("５５０１２５"))
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "+18005550125", NormalizeNumber("  +18005550125 "))
	assert.Equal(t, "+18005550125", NormalizeNumber("＋１８００５５５０１２５"))
}

func TestBase64RoundTrip(t *testing.T) {
	for _, in := range [][]byte{{1}, {1, 2}, {1, 2, 3}, {5, 6, 7, 8}} {
		enc := Base64Enc(in)
		dec, err := Base64DecodeNonPadded(enc)
		assert.NoError(t, err)
		assert.Equal(t, in, dec)
	}
	dec, err := Base64DecodeNonPadded("AQI")
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, dec)
}

func TestBase64EncWithoutPadding(t *testing.T) {
	assert.Equal(t, "AQI", Base64EncWithoutPadding([]byte{1, 2}))
	assert.Len(t, Base64EncWithoutPadding(make([]byte, 16)), 22)
}
