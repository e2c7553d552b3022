package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors matched by HTTPError.Is for the status codes the registration
// endpoints document.
var (
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrVerificationFailed = errors.New("verification failed")
	ErrSessionNotFound    = errors.New("verification session not found")
	ErrDeviceTransfer     = errors.New("device transfer possible")
	ErrInvalidRequest     = errors.New("request rejected as invalid")
	ErrRegistrationLocked = errors.New("registration lock")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// Error is a request that got no response at all.
type Error struct {
	Method string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPError is a response with a non-2xx status.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s %s: status code %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status code %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Is maps well known status codes onto the package errors.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrCaptchaRequired:
		return e.Status == http.StatusPaymentRequired
	case ErrVerificationFailed:
		return e.Status == http.StatusForbidden
	case ErrSessionNotFound:
		return e.Status == http.StatusNotFound
	case ErrDeviceTransfer:
		return e.Status == http.StatusConflict
	case ErrInvalidRequest:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	case ErrRegistrationLocked:
		return e.Status == http.StatusLocked
	case ErrRateLimited:
		return e.Status == http.StatusRequestEntityTooLarge || e.Status == http.StatusTooManyRequests
	}
	return false
}
