// Copyright (c) 2014 Canonical Ltd.
// Licensed under the GPLv3, see the COPYING file for details.

package signup

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/signal-golang/signup/config"
	"github.com/signal-golang/signup/registration"
	"github.com/signal-golang/signup/transport"
	"github.com/signal-golang/signup/verification"
	log "github.com/sirupsen/logrus"
)

var registrationPath = "/v1/registration"

// RegistrationLockError is returned when the number is protected by a
// registration lock PIN. It unwraps to the 423 *transport.HTTPError.
type RegistrationLockError struct {
	Failure *registration.RegistrationLockFailure
	Err     *transport.HTTPError
}

func (e *RegistrationLockError) Error() string {
	return fmt.Sprintf("RegistrationLockFailure, time to wait %d ms: %v", e.Failure.TimeRemaining, e.Err)
}

func (e *RegistrationLockError) Unwrap() error {
	return e.Err
}

// AccountServer submits registration requests for verified sessions.
type AccountServer struct {
	transport    *transport.Transporter
	cfg          *config.Config
	generateKeys func() (*KeyBundle, error)
}

// NewAccountServer returns an AccountServer sending its requests over t and
// taking the account attributes from cfg.
func NewAccountServer(t *transport.Transporter, cfg *config.Config) *AccountServer {
	return &AccountServer{
		transport:    t,
		cfg:          cfg,
		generateKeys: GenerateKeyBundle,
	}
}

// RegisterUser generates a fresh key bundle and registers number with it.
// The session must be verified; an empty pushToken registers a device that
// fetches its messages itself.
func (s *AccountServer) RegisterUser(ctx context.Context, number, password string, session *verification.Session, pushToken string) (*registration.Response, error) {
	if session == nil || !session.Verified {
		return nil, ErrSessionNotVerified
	}

	bundle, err := s.generateKeys()
	if err != nil {
		log.Errorln("[signup] key generation failed", err)
		return nil, err
	}

	req, err := registration.BuildRequest(registration.Params{
		SessionID:                 session.ID,
		Number:                    number,
		Password:                  password,
		PushToken:                 pushToken,
		Name:                      s.cfg.Name,
		DiscoverableByPhoneNumber: s.cfg.DiscoverableByPhoneNumber,
		Capabilities:              s.cfg.AccountCapabilities,
	}, bundle)
	if err != nil {
		return nil, err
	}

	log.Infoln("[signup] registering", number)
	creds := transport.AuthCredentials{Username: number, Password: password}
	resp := &registration.Response{}
	err = s.transport.Call(ctx, http.MethodPost, registrationPath, req, resp, transport.WithBasicAuth(creds))
	if err != nil {
		var httpErr *transport.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusLocked {
			failure, perr := registration.ParseRegistrationLockFailure(httpErr.Body)
			if perr != nil {
				log.Errorln("[signup] decoding registration lock failure", perr)
				return nil, err
			}
			err = &RegistrationLockError{Failure: failure, Err: httpErr}
		}
		log.Errorln("[signup] registration failed", err)
		return nil, err
	}
	log.Infoln("[signup] successful registration", resp.UUID)
	return resp, nil
}
