// Package axolotl holds the key material a device needs to register with the
// service: Curve25519 identity and signed pre-keys, and Kyber1024 last-resort
// pre-keys, serialized the way the server expects them.
package axolotl

import (
	"errors"
	"fmt"

	"github.com/signal-golang/signup/crypto"
	"github.com/signal-golang/signup/curve25519sign"
	"golang.org/x/crypto/curve25519"
)

// DjbType is the key type byte prefixed to serialized Curve25519 public keys.
const DjbType = 0x05

// ErrBadPublicKey is returned when a serialized public key is not in the
// expected format.
var ErrBadPublicKey = errors.New("public key not formatted correctly")

// ErrInvalidSignature is returned when a pre-key signature does not verify.
var ErrInvalidSignature = errors.New("invalid signature")

// ECPublicKey is a Curve25519 public key.
type ECPublicKey struct {
	key [32]byte
}

// NewECPublicKey wraps a raw 32 byte public key.
func NewECPublicKey(b []byte) *ECPublicKey {
	k := &ECPublicKey{}
	copy(k.key[:], b)
	return k
}

// DecodeECPublicKey parses a serialized key, type byte included.
func DecodeECPublicKey(b []byte) (*ECPublicKey, error) {
	if len(b) != 33 || b[0] != DjbType {
		return nil, ErrBadPublicKey
	}
	return NewECPublicKey(b[1:]), nil
}

// Key returns the raw key bytes.
func (k *ECPublicKey) Key() *[32]byte {
	return &k.key
}

// Serialize returns the key prefixed with DjbType.
func (k *ECPublicKey) Serialize() []byte {
	return append([]byte{DjbType}, k.key[:]...)
}

// ECPrivateKey is a clamped Curve25519 private key.
type ECPrivateKey struct {
	key [32]byte
}

// NewECPrivateKey wraps a raw 32 byte private key.
func NewECPrivateKey(b []byte) *ECPrivateKey {
	k := &ECPrivateKey{}
	copy(k.key[:], b)
	return k
}

// Key returns the raw key bytes.
func (k *ECPrivateKey) Key() *[32]byte {
	return &k.key
}

// Sign produces an XEdDSA signature over message.
func (k *ECPrivateKey) Sign(message []byte) ([]byte, error) {
	var random [64]byte
	crypto.RandBytes(random[:])
	sig, err := curve25519sign.Sign(&k.key, message, random)
	if err != nil {
		return nil, err
	}
	return sig[:], nil
}

// ECKeyPair is a Curve25519 key pair.
type ECKeyPair struct {
	PrivateKey *ECPrivateKey
	PublicKey  *ECPublicKey
}

// NewECKeyPair generates a fresh key pair from the CSPRNG.
func NewECKeyPair() (*ECKeyPair, error) {
	var priv [32]byte
	crypto.RandBytes(priv[:])
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("deriving public key: %w", err)
	}
	return &ECKeyPair{
		PrivateKey: NewECPrivateKey(priv[:]),
		PublicKey:  NewECPublicKey(pub),
	}, nil
}

// IdentityKey is the public half of an identity key pair.
type IdentityKey struct {
	ECPublicKey
}

// NewIdentityKey wraps a raw 32 byte public key.
func NewIdentityKey(b []byte) *IdentityKey {
	return &IdentityKey{*NewECPublicKey(b)}
}

// IdentityKeyPair is a long term identity, either the account identity or
// the phone number identity.
type IdentityKeyPair struct {
	PublicKey  *IdentityKey
	PrivateKey *ECPrivateKey
}

// GenerateIdentityKeyPair creates a new identity.
func GenerateIdentityKeyPair() (*IdentityKeyPair, error) {
	kp, err := NewECKeyPair()
	if err != nil {
		return nil, err
	}
	return &IdentityKeyPair{
		PublicKey:  &IdentityKey{*kp.PublicKey},
		PrivateKey: kp.PrivateKey,
	}, nil
}

// VerifySignature checks that signature was made over message by the owner
// of the given identity key.
func VerifySignature(identity *ECPublicKey, message, signature []byte) bool {
	if identity == nil || len(signature) != 64 {
		return false
	}
	var sig [64]byte
	copy(sig[:], signature)
	return curve25519sign.Verify(identity.key, message, &sig)
}
