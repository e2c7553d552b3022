package utils

import (
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	a, b := NewUUID(), NewUUID()
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte(uuid.V4), a.Version())
	assert.Equal(t, byte(uuid.VariantRFC4122), a.Variant())

	s, err := UUIDStr(a.Bytes())
	require.NoError(t, err)
	assert.Equal(t, a.String(), s)

	_, err = UUIDStr([]byte{1, 2, 3})
	assert.Error(t, err)
}
