package registration

import (
	"encoding/json"

	uuid "github.com/satori/go.uuid"
	"github.com/signal-golang/signup/transport"
)

// Response is the account record returned by a successful registration.
type Response struct {
	UUID           uuid.UUID `json:"uuid"`
	Number         string    `json:"number"`
	PNI            uuid.UUID `json:"pni"`
	UsernameHash   string    `json:"usernameHash,omitempty"`
	StorageCapable bool      `json:"storageCapable"`
}

// RegistrationLockFailure is the body of a 423 reply: the number is
// protected by a registration lock PIN.
type RegistrationLockFailure struct {
	TimeRemaining uint64                    `json:"timeRemaining"`
	Credentials   transport.AuthCredentials `json:"svr2Credentials"`
}

// ParseRegistrationLockFailure decodes the body of a 423 reply.
func ParseRegistrationLockFailure(body []byte) (*RegistrationLockFailure, error) {
	v := &RegistrationLockFailure{}
	if err := json.Unmarshal(body, v); err != nil {
		return nil, err
	}
	return v, nil
}
