// Copyright (c) 2014 Canonical Ltd.
// Licensed under the GPLv3, see the COPYING file for details.

// Package signup registers a new account with a Signal compatible server:
// it verifies the phone number through a verification session, generates
// the identity and pre-key material and submits the registration.
package signup

//go:generate mockgen -source=signup.go -destination=mocks/mocks.go -package=mocks Verifier,Submitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/signal-golang/signup/config"
	"github.com/signal-golang/signup/crypto"
	"github.com/signal-golang/signup/helpers"
	"github.com/signal-golang/signup/registration"
	rootCa "github.com/signal-golang/signup/rootCa"
	"github.com/signal-golang/signup/transport"
	"github.com/signal-golang/signup/verification"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Verifier runs the verification session calls.
type Verifier interface {
	CreateSession(ctx context.Context, number string) (*verification.Session, error)
	UpdateSession(ctx context.Context, id, captcha string) (*verification.Session, error)
	RequestCode(ctx context.Context, id string, t verification.Transport) (*verification.Session, error)
	SubmitCode(ctx context.Context, id, code string) (*verification.Session, error)
}

// Submitter registers an account for a verified session.
type Submitter interface {
	RegisterUser(ctx context.Context, number, password string, session *verification.Session, pushToken string) (*registration.Response, error)
}

// Step names one stage of the registration workflow.
type Step string

const (
	StepCreateSession Step = "create_session"
	StepSubmitCaptcha Step = "submit_captcha"
	StepRequestCode   Step = "request_code"
	StepSubmitCode    Step = "submit_code"
	StepRegister      Step = "register"
)

// Client contains application specific data and callbacks.
type Client struct {
	GetPhoneNumber      func() string
	GetPassword         func() string
	GetCaptchaToken     func() string
	GetVerificationCode func() string
	GetPushToken        func() string
	StepHandler         func(Step, *verification.Session)
	RegistrationDone    func(*Account)
}

// Account is a registered account together with the password it
// authenticates with.
type Account struct {
	*registration.Response
	Password string
}

// Registrar runs the whole registration workflow. It holds no state between
// calls to Register.
type Registrar struct {
	cfg       *config.Config
	client    *Client
	verifier  Verifier
	submitter Submitter
	tracer    trace.Tracer
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithVerifier replaces the verification client built from the config.
func WithVerifier(v Verifier) Option {
	return func(r *Registrar) {
		r.verifier = v
	}
}

// WithSubmitter replaces the AccountServer built from the config.
func WithSubmitter(s Submitter) Option {
	return func(r *Registrar) {
		r.submitter = s
	}
}

// WithTracer sets the tracer the workflow steps are reported to.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registrar) {
		r.tracer = t
	}
}

// NewRegistrar validates cfg and wires up the transport, the verification
// client and the account server, unless they are passed as options.
func NewRegistrar(cfg *config.Config, client *Client, opts ...Option) (*Registrar, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no config", ErrInvalidConfig)
	}
	if client == nil || client.GetVerificationCode == nil {
		return nil, fmt.Errorf("%w: client must provide GetVerificationCode", ErrInvalidConfig)
	}
	applyDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)

	r := &Registrar{cfg: cfg, client: client}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("github.com/signal-golang/signup")
	}
	if r.verifier == nil || r.submitter == nil {
		t, err := NewTransport(cfg)
		if err != nil {
			return nil, err
		}
		if r.verifier == nil {
			r.verifier = verification.NewClient(t, cfg.ClientType)
		}
		if r.submitter == nil {
			r.submitter = NewAccountServer(t, cfg)
		}
	}
	return r, nil
}

// NewTransport builds the HTTP transport described by cfg.
func NewTransport(cfg *config.Config) (*transport.Transporter, error) {
	pool, err := rootCa.Load(cfg.RootCA)
	if err != nil {
		return nil, err
	}
	return transport.New(transport.Options{
		BaseURL:         cfg.Server,
		UserAgent:       cfg.UserAgent,
		ProxyServer:     cfg.ProxyServer,
		RootCAs:         pool,
		Timeout:         cfg.Timeout,
		RequestInterval: cfg.RequestInterval,
	})
}

// Register verifies the phone number and registers the account. Every step
// waits for the previous one; the first error ends the workflow.
func (r *Registrar) Register(ctx context.Context) (*Account, error) {
	ctx, span := r.tracer.Start(ctx, "signup.Register")
	defer span.End()

	account, err := r.register(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return account, nil
}

func (r *Registrar) register(ctx context.Context) (*Account, error) {
	number := r.cfg.Tel
	if r.client.GetPhoneNumber != nil {
		number = r.client.GetPhoneNumber()
	}
	number = helpers.NormalizeNumber(number)
	if err := validate.Var(number, "required,e164"); err != nil {
		return nil, fmt.Errorf("phone number %q: %w", number, err)
	}
	method, err := verification.ParseTransport(r.cfg.VerificationType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	session, err := r.step(ctx, StepCreateSession, func(ctx context.Context) (*verification.Session, error) {
		return r.verifier.CreateSession(ctx, number)
	})
	if err != nil {
		return nil, err
	}

	if session.Requests(verification.InformationCaptcha) || !session.AllowedToRequestCode {
		captcha := ""
		if r.client.GetCaptchaToken != nil {
			captcha = strings.TrimSpace(r.client.GetCaptchaToken())
		}
		if captcha == "" {
			return nil, &CodeNotAllowedError{SessionID: session.ID, RequestedInformation: session.RequestedInformation}
		}
		id := session.ID
		session, err = r.step(ctx, StepSubmitCaptcha, func(ctx context.Context) (*verification.Session, error) {
			return r.verifier.UpdateSession(ctx, id, captcha)
		})
		if err != nil {
			return nil, err
		}
	}
	if !session.AllowedToRequestCode {
		return nil, &CodeNotAllowedError{SessionID: session.ID, RequestedInformation: session.RequestedInformation}
	}

	id := session.ID
	session, err = r.step(ctx, StepRequestCode, func(ctx context.Context) (*verification.Session, error) {
		return r.verifier.RequestCode(ctx, id, method)
	})
	if err != nil {
		return nil, err
	}

	code := r.client.GetVerificationCode()
	session, err = r.step(ctx, StepSubmitCode, func(ctx context.Context) (*verification.Session, error) {
		return r.verifier.SubmitCode(ctx, id, code)
	})
	if err != nil {
		return nil, err
	}
	if !session.Verified {
		log.Errorln("[signup] session not verified", session.ID)
		return nil, fmt.Errorf("session %s: %w", session.ID, ErrSessionNotVerified)
	}

	password := ""
	if r.client.GetPassword != nil {
		password = r.client.GetPassword()
	}
	if password == "" {
		password = generatePassword()
	}
	pushToken := ""
	if r.client.GetPushToken != nil {
		pushToken = r.client.GetPushToken()
	}

	var resp *registration.Response
	_, err = r.step(ctx, StepRegister, func(ctx context.Context) (*verification.Session, error) {
		var err error
		resp, err = r.submitter.RegisterUser(ctx, number, password, session, pushToken)
		return session, err
	})
	if err != nil {
		return nil, err
	}

	account := &Account{Response: resp, Password: password}
	if r.client.RegistrationDone != nil {
		log.Infoln("[signup] RegistrationDone")
		r.client.RegistrationDone(account)
	}
	return account, nil
}

// step runs one workflow step in its own span and reports the resulting
// session to the client.
func (r *Registrar) step(ctx context.Context, step Step, fn func(context.Context) (*verification.Session, error)) (*verification.Session, error) {
	ctx, span := r.tracer.Start(ctx, "signup."+string(step))
	defer span.End()

	s, err := fn(ctx)
	if err == nil && s == nil {
		err = errors.New("empty session in response")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("[signup] %s failed: %v", step, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("session.id", s.ID),
		attribute.Bool("session.allowed_to_request_code", s.AllowedToRequestCode),
		attribute.Bool("session.verified", s.Verified),
	)
	if r.client.StepHandler != nil {
		r.client.StepHandler(step, s)
	}
	return s, nil
}

// Generate a random 16 byte string used for HTTP Basic Authentication to the server
func generatePassword() string {
	b := make([]byte, 16)
	crypto.RandBytes(b)
	return helpers.Base64EncWithoutPadding(b)
}

// setupLogging sets the logging verbosity level based on configuration
// and environment variables
func setupLogging(loglevel string) {
	if loglevel == "" {
		loglevel = os.Getenv("SIGNUP_LOGLEVEL")
	}

	switch strings.ToUpper(loglevel) {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.ErrorLevel)
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
}
