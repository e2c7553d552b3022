package signup

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signal-golang/signup/transport"
)

func TestKindOf(t *testing.T) {
	httpErr := &transport.HTTPError{Status: http.StatusTooManyRequests}
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"other", errors.New("boom"), KindUnknown},
		{"http", httpErr, KindHTTPStatus},
		{"wrapped http", fmt.Errorf("step: %w", httpErr), KindHTTPStatus},
		{"transport", &transport.Error{Err: errors.New("connection refused")}, KindTransport},
		{"keys", fmt.Errorf("aci: %w", ErrMissingKeyMaterial), KindValidation},
		{"config", ErrInvalidConfig, KindValidation},
		{"not allowed", &CodeNotAllowedError{SessionID: "s1"}, KindPrecondition},
		{"not verified", fmt.Errorf("session s1: %w", ErrSessionNotVerified), KindPrecondition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "http status", KindHTTPStatus.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestCodeNotAllowedErrorMessage(t *testing.T) {
	err := &CodeNotAllowedError{SessionID: "s1", RequestedInformation: []string{"captcha", "pushChallenge"}}
	assert.Equal(t, "verification code may not be requested for session s1, server requests: captcha, pushChallenge", err.Error())
	assert.True(t, errors.Is(err, ErrCodeNotAllowed))
}
