// Package verification talks to the verification session endpoints that
// prove ownership of a phone number before an account can be registered.
package verification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/signal-golang/signup/helpers"
	"github.com/signal-golang/signup/transport"
	log "github.com/sirupsen/logrus"
)

var (
	sessionPath     = "/v1/verification/session"
	sessionByIDPath = "/v1/verification/session/%s"
	sessionCodePath = "/v1/verification/session/%s/code"
)

// Transport is the channel a verification code is delivered over.
type Transport string

const (
	SMS   Transport = "sms"
	Voice Transport = "voice"
)

// ParseTransport accepts "sms" or "voice" in any case.
func ParseTransport(s string) (Transport, error) {
	switch Transport(strings.ToLower(s)) {
	case SMS:
		return SMS, nil
	case Voice:
		return Voice, nil
	}
	return "", fmt.Errorf("unknown verification transport %q", s)
}

// Requested information values a session may carry.
const (
	InformationCaptcha       = "captcha"
	InformationPushChallenge = "pushChallenge"
)

// Session is the server side state of a verification attempt.
type Session struct {
	ID                      string   `json:"id"`
	AllowedToRequestCode    bool     `json:"allowedToRequestCode"`
	RequestedInformation    []string `json:"requestedInformation,omitempty"`
	NextSms                 *int64   `json:"nextSms,omitempty"`
	NextCall                *int64   `json:"nextCall,omitempty"`
	NextVerificationAttempt *int64   `json:"nextVerificationAttempt,omitempty"`
	Verified                bool     `json:"verified"`
}

// Requests reports whether the server asks for the given information.
func (s *Session) Requests(info string) bool {
	for _, r := range s.RequestedInformation {
		if r == info {
			return true
		}
	}
	return false
}

type createSessionRequest struct {
	Number string `json:"number"`
}

type updateSessionRequest struct {
	Captcha string `json:"captcha"`
}

type requestCodeRequest struct {
	Transport Transport `json:"transport"`
	Client    string    `json:"client"`
}

type submitCodeRequest struct {
	Code string `json:"code"`
}

// Client issues one blocking round trip per call, without retries.
type Client struct {
	transport  *transport.Transporter
	clientType string
}

// NewClient returns a client that identifies itself as clientType when
// requesting codes.
func NewClient(t *transport.Transporter, clientType string) *Client {
	return &Client{transport: t, clientType: clientType}
}

// CreateSession opens a verification session for number.
func (c *Client) CreateSession(ctx context.Context, number string) (*Session, error) {
	log.Infoln("[signup] creating verification session for", number)
	s := &Session{}
	err := c.transport.Call(ctx, http.MethodPost, sessionPath, createSessionRequest{Number: number}, s)
	if err != nil {
		log.Errorln("[signup] session creation failed", err)
		return nil, err
	}
	log.Debugf("[signup] session created %+v", s)
	return s, nil
}

// GetSession fetches the current state of a session.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	s := &Session{}
	err := c.transport.Call(ctx, http.MethodGet, fmt.Sprintf(sessionByIDPath, url.PathEscape(id)), nil, s)
	if err != nil {
		log.Errorln("[signup] fetching session failed", err)
		return nil, err
	}
	return s, nil
}

// UpdateSession submits a captcha token to clear the session for requesting
// a code.
func (c *Client) UpdateSession(ctx context.Context, id, captcha string) (*Session, error) {
	log.Infoln("[signup] submitting captcha for session", id)
	s := &Session{}
	err := c.transport.Call(ctx, http.MethodPatch, fmt.Sprintf(sessionByIDPath, url.PathEscape(id)), updateSessionRequest{Captcha: captcha}, s)
	if err != nil {
		log.Errorln("[signup] captcha verification failed", err)
		return nil, err
	}
	log.Debugf("[signup] captcha accepted %+v", s)
	return s, nil
}

// RequestCode asks the server to send a code over the given transport.
// Repeated calls may be rate limited by the server.
func (c *Client) RequestCode(ctx context.Context, id string, t Transport) (*Session, error) {
	log.Infof("[signup] requesting %s verification code for session %s", t, id)
	s := &Session{}
	body := requestCodeRequest{Transport: Transport(strings.ToLower(string(t))), Client: c.clientType}
	err := c.transport.Call(ctx, http.MethodPost, fmt.Sprintf(sessionCodePath, url.PathEscape(id)), body, s)
	if err != nil {
		log.Errorln("[signup] code request failed", err)
		return nil, err
	}
	return s, nil
}

// SubmitCode submits the received code; the returned session's Verified flag
// tells whether it was accepted.
func (c *Client) SubmitCode(ctx context.Context, id, code string) (*Session, error) {
	log.Infoln("[signup] submitting verification code for session", id)
	s := &Session{}
	body := submitCodeRequest{Code: helpers.NormalizeCode(code)}
	err := c.transport.Call(ctx, http.MethodPut, fmt.Sprintf(sessionCodePath, url.PathEscape(id)), body, s)
	if err != nil {
		log.Errorln("[signup] code verification failed", err)
		return nil, err
	}
	return s, nil
}
