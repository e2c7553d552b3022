package axolotl

import (
	"fmt"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
)

// KyberType is the key type byte prefixed to serialized Kyber1024 public keys.
const KyberType = 0x08

// KyberPublicKey is the public half of a Kyber1024 KEM key pair.
type KyberPublicKey struct {
	key kem.PublicKey
	raw []byte
}

// DecodeKyberPublicKey parses a serialized key, type byte included.
func DecodeKyberPublicKey(b []byte) (*KyberPublicKey, error) {
	scheme := kyber1024.Scheme()
	if len(b) != scheme.PublicKeySize()+1 || b[0] != KyberType {
		return nil, ErrBadPublicKey
	}
	pk, err := scheme.UnmarshalBinaryPublicKey(b[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPublicKey, err)
	}
	return &KyberPublicKey{key: pk, raw: append([]byte(nil), b[1:]...)}, nil
}

// Serialize returns the key prefixed with KyberType.
func (k *KyberPublicKey) Serialize() []byte {
	return append([]byte{KyberType}, k.raw...)
}

// Key returns the underlying KEM public key.
func (k *KyberPublicKey) Key() kem.PublicKey {
	return k.key
}

// KyberKeyPair is a Kyber1024 key pair.
type KyberKeyPair struct {
	PublicKey  *KyberPublicKey
	PrivateKey kem.PrivateKey
}

// NewKyberKeyPair generates a fresh key pair from the CSPRNG.
func NewKyberKeyPair() (*KyberKeyPair, error) {
	pk, sk, err := kyber1024.Scheme().GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generating kyber key pair: %w", err)
	}
	raw, err := pk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &KyberKeyPair{
		PublicKey:  &KyberPublicKey{key: pk, raw: raw},
		PrivateKey: sk,
	}, nil
}
