package signup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/signal-golang/signup/axolotl"
	"github.com/signal-golang/signup/registration"
	"github.com/signal-golang/signup/transport"
)

var (
	// ErrInvalidConfig is returned when the configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrCodeNotAllowed is returned when the session still does not allow
	// requesting a code after the captcha step.
	ErrCodeNotAllowed = errors.New("verification code may not be requested")
	// ErrSessionNotVerified is returned when registration is attempted with a
	// session that has not been verified.
	ErrSessionNotVerified = errors.New("verification session not verified")
	// ErrMissingKeyMaterial is returned when key generation produced an empty
	// key or signature.
	ErrMissingKeyMaterial = registration.ErrMissingKeyMaterial
)

// CodeNotAllowedError carries what the server still asks for before it
// allows requesting a code.
type CodeNotAllowedError struct {
	SessionID            string
	RequestedInformation []string
}

func (e *CodeNotAllowedError) Error() string {
	if len(e.RequestedInformation) == 0 {
		return fmt.Sprintf("%v for session %s", ErrCodeNotAllowed, e.SessionID)
	}
	return fmt.Sprintf("%v for session %s, server requests: %s", ErrCodeNotAllowed, e.SessionID, strings.Join(e.RequestedInformation, ", "))
}

func (e *CodeNotAllowedError) Is(target error) bool {
	return target == ErrCodeNotAllowed
}

// Kind classifies an error returned by the registration workflow.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport means no response was received.
	KindTransport
	// KindHTTPStatus means the server answered with a non-2xx status.
	KindHTTPStatus
	// KindValidation means local input or generated material was invalid.
	KindValidation
	// KindPrecondition means the server state did not allow the next step.
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http status"
	case KindValidation:
		return "validation"
	case KindPrecondition:
		return "precondition"
	}
	return "unknown"
}

// KindOf returns the kind of err, KindUnknown when it is none of the
// workflow's errors.
func KindOf(err error) Kind {
	var (
		httpErr *transport.HTTPError
		tErr    *transport.Error
		vErrs   validator.ValidationErrors
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &httpErr):
		return KindHTTPStatus
	case errors.As(err, &tErr):
		return KindTransport
	case errors.Is(err, ErrMissingKeyMaterial),
		errors.Is(err, axolotl.ErrInvalidSignature),
		errors.Is(err, ErrInvalidConfig),
		errors.As(err, &vErrs):
		return KindValidation
	case errors.Is(err, ErrCodeNotAllowed),
		errors.Is(err, ErrSessionNotVerified):
		return KindPrecondition
	}
	return KindUnknown
}
