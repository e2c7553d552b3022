package registration

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/signal-golang/signup/config"
	"github.com/signal-golang/signup/helpers"
	log "github.com/sirupsen/logrus"
)

// PrimaryDeviceID is the device id of the device that registers an account.
const PrimaryDeviceID = 1

var validate = validator.New()

// Params are the caller supplied parts of a registration request.
type Params struct {
	SessionID string `validate:"required"`
	Number    string `validate:"required,e164"`
	// Password is optional; it becomes null in the request when empty.
	Password  string
	PushToken string
	// Name is the encrypted device name, left out when empty.
	Name                      string
	DiscoverableByPhoneNumber bool
	Capabilities              config.AccountCapabilities
}

// PreKeyEntity is a signed pre-key as the server expects it, used for both
// the EC signed pre-keys and the Kyber last-resort pre-keys.
type PreKeyEntity struct {
	ID        uint32 `json:"keyId"`
	PublicKey string `json:"publicKey"`
	Signature string `json:"signature"`
}

// AccountAttributes describes the registering device
type AccountAttributes struct {
	FetchesMessages           bool                       `json:"fetchesMessages"`
	RegistrationID            uint32                     `json:"registrationId"`
	PNIRegistrationID         uint32                     `json:"pniRegistrationId"`
	Name                      *string                    `json:"name"`
	Capabilities              config.AccountCapabilities `json:"capabilities"`
	DiscoverableByPhoneNumber bool                       `json:"discoverableByPhoneNumber"`
	FcmRegistrationID         string                     `json:"fcmRegistrationId,omitempty"`
}

// GcmToken carries the push token of the device.
type GcmToken struct {
	GcmRegistrationID string `json:"gcmRegistrationId"`
}

// Request is the body of POST /v1/registration. The device activation
// fields sit at the top level; the server rejects them nested.
type Request struct {
	SessionID             string            `json:"sessionId"`
	Number                string            `json:"number"`
	Password              *string           `json:"password"`
	DeviceID              int               `json:"deviceId"`
	AccountAttributes     AccountAttributes `json:"accountAttributes"`
	AciIdentityKey        string            `json:"aciIdentityKey"`
	PniIdentityKey        string            `json:"pniIdentityKey"`
	AciSignedPreKey       PreKeyEntity      `json:"aciSignedPreKey"`
	PniSignedPreKey       PreKeyEntity      `json:"pniSignedPreKey"`
	AciPqLastResortPreKey PreKeyEntity      `json:"aciPqLastResortPreKey"`
	PniPqLastResortPreKey PreKeyEntity      `json:"pniPqLastResortPreKey"`
	SkipDeviceTransfer    bool              `json:"skipDeviceTransfer"`
	GcmToken              *GcmToken         `json:"gcmToken,omitempty"`
}

// BuildRequest flattens the key bundle into the request body. It has no side
// effects besides debug logging; the same inputs give the same request.
func BuildRequest(p Params, b *KeyBundle) (*Request, error) {
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid registration parameters: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	req := &Request{
		SessionID: p.SessionID,
		Number:    p.Number,
		DeviceID:  PrimaryDeviceID,
		AccountAttributes: AccountAttributes{
			FetchesMessages:           p.PushToken == "",
			RegistrationID:            b.RegistrationID,
			PNIRegistrationID:         b.PNIRegistrationID,
			Capabilities:              p.Capabilities,
			DiscoverableByPhoneNumber: p.DiscoverableByPhoneNumber,
			FcmRegistrationID:         p.PushToken,
		},
		AciIdentityKey:        helpers.Base64Enc(b.ACI.IdentityKeyPair.PublicKey.Serialize()),
		PniIdentityKey:        helpers.Base64Enc(b.PNI.IdentityKeyPair.PublicKey.Serialize()),
		AciSignedPreKey:       signedPreKeyEntity(b.ACI),
		PniSignedPreKey:       signedPreKeyEntity(b.PNI),
		AciPqLastResortPreKey: lastResortKeyEntity(b.ACI),
		PniPqLastResortPreKey: lastResortKeyEntity(b.PNI),
		SkipDeviceTransfer:    true,
	}
	if p.Password != "" {
		password := p.Password
		req.Password = &password
	}
	if p.Name != "" {
		name := p.Name
		req.AccountAttributes.Name = &name
	}
	if p.PushToken != "" {
		req.GcmToken = &GcmToken{GcmRegistrationID: p.PushToken}
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		activation, _ := json.MarshalIndent(struct {
			AciSignedPreKey       PreKeyEntity `json:"aciSignedPreKey"`
			PniSignedPreKey       PreKeyEntity `json:"pniSignedPreKey"`
			AciPqLastResortPreKey PreKeyEntity `json:"aciPqLastResortPreKey"`
			PniPqLastResortPreKey PreKeyEntity `json:"pniPqLastResortPreKey"`
		}{req.AciSignedPreKey, req.PniSignedPreKey, req.AciPqLastResortPreKey, req.PniPqLastResortPreKey}, "", "  ")
		log.Debugln("[signup] device activation request", string(activation))
	}
	return req, nil
}

func signedPreKeyEntity(k *IdentityKeys) PreKeyEntity {
	return PreKeyEntity{
		ID:        k.SignedPreKey.ID,
		PublicKey: helpers.Base64Enc(k.SignedPreKey.KeyPair.PublicKey.Serialize()),
		Signature: helpers.Base64Enc(k.SignedPreKey.Signature),
	}
}

func lastResortKeyEntity(k *IdentityKeys) PreKeyEntity {
	return PreKeyEntity{
		ID:        k.LastResortKey.ID,
		PublicKey: helpers.Base64Enc(k.LastResortKey.KeyPair.PublicKey.Serialize()),
		Signature: helpers.Base64Enc(k.LastResortKey.Signature),
	}
}
