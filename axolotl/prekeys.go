package axolotl

import (
	"time"
)

// SignedPreKeyRecord is a medium term Curve25519 pre-key whose serialized
// public key is signed by an identity key.
type SignedPreKeyRecord struct {
	ID        uint32
	Timestamp time.Time
	KeyPair   *ECKeyPair
	Signature []byte
}

// NewSignedPreKeyRecord packages an already signed key pair.
func NewSignedPreKeyRecord(id uint32, timestamp time.Time, kp *ECKeyPair, signature []byte) *SignedPreKeyRecord {
	return &SignedPreKeyRecord{
		ID:        id,
		Timestamp: timestamp,
		KeyPair:   kp,
		Signature: signature,
	}
}

// GenerateSignedPreKey creates a new EC key pair and signs it with identity.
func GenerateSignedPreKey(identity *IdentityKeyPair, id uint32) (*SignedPreKeyRecord, error) {
	kp, err := NewECKeyPair()
	if err != nil {
		return nil, err
	}
	signature, err := identity.PrivateKey.Sign(kp.PublicKey.Serialize())
	if err != nil {
		return nil, err
	}
	return NewSignedPreKeyRecord(id, time.Now(), kp, signature), nil
}

// KyberPreKeyRecord is a post-quantum pre-key whose serialized public key is
// signed by an identity key. Registration uses it as the last-resort key.
type KyberPreKeyRecord struct {
	ID        uint32
	Timestamp time.Time
	KeyPair   *KyberKeyPair
	Signature []byte
}

// NewKyberPreKeyRecord packages an already signed key pair.
func NewKyberPreKeyRecord(id uint32, timestamp time.Time, kp *KyberKeyPair, signature []byte) *KyberPreKeyRecord {
	return &KyberPreKeyRecord{
		ID:        id,
		Timestamp: timestamp,
		KeyPair:   kp,
		Signature: signature,
	}
}

// GenerateKyberPreKey creates a new Kyber1024 key pair and signs it with identity.
func GenerateKyberPreKey(identity *IdentityKeyPair, id uint32) (*KyberPreKeyRecord, error) {
	kp, err := NewKyberKeyPair()
	if err != nil {
		return nil, err
	}
	signature, err := identity.PrivateKey.Sign(kp.PublicKey.Serialize())
	if err != nil {
		return nil, err
	}
	return NewKyberPreKeyRecord(id, time.Now(), kp, signature), nil
}
