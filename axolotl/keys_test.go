package axolotl

import (
	"testing"

	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECPublicKeySerialize(t *testing.T) {
	kp, err := NewECKeyPair()
	require.NoError(t, err)

	b := kp.PublicKey.Serialize()
	assert.Len(t, b, 33)
	assert.Equal(t, byte(DjbType), b[0])

	decoded, err := DecodeECPublicKey(b)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey.Key(), decoded.Key())
}

func TestDecodeECPublicKeyRejectsBadInput(t *testing.T) {
	_, err := DecodeECPublicKey(make([]byte, 32))
	assert.Equal(t, ErrBadPublicKey, err)

	b := make([]byte, 33)
	b[0] = 0x07
	_, err = DecodeECPublicKey(b)
	assert.Equal(t, ErrBadPublicKey, err)
}

func TestSignedPreKeySignatureVerifies(t *testing.T) {
	identity, err := GenerateIdentityKeyPair()
	require.NoError(t, err)

	record, err := GenerateSignedPreKey(identity, 42)
	require.NoError(t, err)

	assert.Equal(t, uint32(42), record.ID)
	assert.Len(t, record.Signature, 64)
	assert.True(t, VerifySignature(&identity.PublicKey.ECPublicKey, record.KeyPair.PublicKey.Serialize(), record.Signature))

	other, err := GenerateIdentityKeyPair()
	require.NoError(t, err)
	assert.False(t, VerifySignature(&other.PublicKey.ECPublicKey, record.KeyPair.PublicKey.Serialize(), record.Signature))
}

func TestKyberPreKeySignatureVerifies(t *testing.T) {
	identity, err := GenerateIdentityKeyPair()
	require.NoError(t, err)

	record, err := GenerateKyberPreKey(identity, 7)
	require.NoError(t, err)

	serialized := record.KeyPair.PublicKey.Serialize()
	assert.Len(t, serialized, kyber1024.Scheme().PublicKeySize()+1)
	assert.Equal(t, byte(KyberType), serialized[0])
	assert.True(t, VerifySignature(&identity.PublicKey.ECPublicKey, serialized, record.Signature))
}

func TestKyberKeyPairEncapsulates(t *testing.T) {
	kp, err := NewKyberKeyPair()
	require.NoError(t, err)

	decoded, err := DecodeKyberPublicKey(kp.PublicKey.Serialize())
	require.NoError(t, err)

	scheme := kyber1024.Scheme()
	ct, ss, err := scheme.Encapsulate(decoded.Key())
	require.NoError(t, err)
	ss2, err := scheme.Decapsulate(kp.PrivateKey, ct)
	require.NoError(t, err)
	assert.Equal(t, ss, ss2)
}

func TestVerifySignatureRejectsShortSignature(t *testing.T) {
	identity, err := GenerateIdentityKeyPair()
	require.NoError(t, err)
	assert.False(t, VerifySignature(&identity.PublicKey.ECPublicKey, []byte("m"), []byte{1, 2, 3}))
	assert.False(t, VerifySignature(nil, []byte("m"), make([]byte, 64)))
}
