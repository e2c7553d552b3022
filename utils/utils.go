package utils

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/signal-golang/signup/crypto"
)

// NewUUID returns a random version 4 UUID.
func NewUUID() uuid.UUID {
	var u uuid.UUID
	crypto.RandBytes(u[:])
	u.SetVersion(uuid.V4)
	u.SetVariant(uuid.VariantRFC4122)
	return u
}

func UUIDStr(uuid_ba []byte) (string, error) {
	u, err := uuid.FromBytes(uuid_ba)
	if err != nil {
		return "", err
	}
	return u.String(), err
}

func CurrentTimeMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
