package transport

import (
	"encoding/base64"
)

// AuthCredentials holds the HTTP Basic credentials of an account
type AuthCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AsBasic returns the Authorization header value.
func (a *AuthCredentials) AsBasic() string {
	usernameAndPassword := a.Username + ":" + a.Password
	encoded := base64.StdEncoding.EncodeToString([]byte(usernameAndPassword))
	return "Basic " + encoded
}
