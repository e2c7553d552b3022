// Package mockserver is an in-memory implementation of the verification and
// registration endpoints, for local development and end-to-end tests.
package mockserver

import (
	"crypto/rand"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	uuid "github.com/satori/go.uuid"
	"github.com/signal-golang/signup/registration"
	"github.com/signal-golang/signup/utils"
	"github.com/signal-golang/signup/verification"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultCaptcha is the captcha token the server accepts.
	DefaultCaptcha = "noop.noop.registration.noop"
	// DefaultCode is the verification code every session is sent.
	DefaultCode = "550125"
)

var validate = validator.New()

// Options configures a Server.
type Options struct {
	Captcha string
	Code    string
	// Registry receives the server metrics, a private registry is used when nil.
	Registry *prometheus.Registry
}

type session struct {
	verification.Session
	number        string
	codeRequested bool
}

// Account is a registration the server accepted.
type Account struct {
	UUID     uuid.UUID
	PNI      uuid.UUID
	Password string
	Request  registration.Request
	// Created is the registration time in milliseconds since the epoch.
	Created  int64
}

// Server keeps sessions and accounts in memory.
type Server struct {
	captcha string
	code    string
	metrics *Metrics
	router  chi.Router

	mu       sync.Mutex
	sessions map[string]*session
	accounts map[string]*Account
}

// New returns a Server with its routes mounted.
func New(opts Options) *Server {
	if opts.Captcha == "" {
		opts.Captcha = DefaultCaptcha
	}
	if opts.Code == "" {
		opts.Code = DefaultCode
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		captcha:  opts.Captcha,
		code:     opts.Code,
		metrics:  newMetrics(opts.Registry),
		sessions: make(map[string]*session),
		accounts: make(map[string]*Account),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)
	r.Post("/v1/verification/session", s.handleCreateSession)
	r.Get("/v1/verification/session/{id}", s.handleGetSession)
	r.Patch("/v1/verification/session/{id}", s.handleUpdateSession)
	r.Post("/v1/verification/session/{id}/code", s.handleRequestCode)
	r.Put("/v1/verification/session/{id}/code", s.handleSubmitCode)
	r.Post("/v1/registration", s.handleRegistration)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server's counters.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Account returns the account registered for number.
func (s *Server) Account(number string) (*Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[number]
	return a, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorln("[mockserver] encoding response", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"code": status, "message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return false
	}
	return true
}

// lookup finds the session named in the URL, writing a 404 if there is none.
// The caller must hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *session {
	sess, ok := s.sessions[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil
	}
	return sess
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number string `json:"number" validate:"required,e164"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid number")
		return
	}

	sess := &session{
		Session: verification.Session{
			ID:                   ulid.MustNew(ulid.Now(), rand.Reader).String(),
			AllowedToRequestCode: false,
			RequestedInformation: []string{verification.InformationCaptcha},
		},
		number: req.Number,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.SessionsCreated.Inc()
	log.Debugln("[mockserver] session created", sess.ID, req.Number)
	writeJSON(w, http.StatusOK, sess.Session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Session)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Captcha string `json:"captcha"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	// A wrong token leaves the captcha requested.
	if req.Captcha == s.captcha {
		sess.RequestedInformation = nil
		sess.AllowedToRequestCode = true
		next := int64(0)
		sess.NextSms = &next
		sess.NextCall = &next
	}
	writeJSON(w, http.StatusOK, sess.Session)
}

func (s *Server) handleRequestCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transport string `json:"transport" validate:"required,oneof=sms voice"`
		Client    string `json:"client"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transport")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	if !sess.AllowedToRequestCode || sess.Verified {
		writeError(w, http.StatusConflict, "session does not allow requesting a code")
		return
	}
	sess.codeRequested = true
	next := int64(0)
	sess.NextVerificationAttempt = &next
	s.metrics.CodesSent.WithLabelValues(req.Transport).Inc()
	log.Debugf("[mockserver] sending code %s over %s to %s (client %s)", s.code, req.Transport, sess.number, req.Client)
	writeJSON(w, http.StatusOK, sess.Session)
}

func (s *Server) handleSubmitCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	if !sess.codeRequested {
		writeError(w, http.StatusConflict, "no code requested")
		return
	}
	if req.Code != s.code {
		writeError(w, http.StatusForbidden, "incorrect code")
		return
	}
	sess.Verified = true
	writeJSON(w, http.StatusOK, sess.Session)
}

func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	number, password, ok := r.BasicAuth()
	if !ok {
		s.metrics.Registrations.WithLabelValues("unauthorized").Inc()
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}
	var req registration.Request
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, found := s.sessions[req.SessionID]
	switch {
	case !found || !sess.Verified:
		s.metrics.Registrations.WithLabelValues("unverified").Inc()
		writeError(w, http.StatusUnauthorized, "session not verified")
		return
	case number != sess.number || req.Number != sess.number:
		s.metrics.Registrations.WithLabelValues("unauthorized").Inc()
		writeError(w, http.StatusUnauthorized, "number does not match session")
		return
	}
	if err := verifyRequestKeys(&req); err != nil {
		s.metrics.Registrations.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if _, exists := s.accounts[number]; exists && !req.SkipDeviceTransfer {
		s.metrics.Registrations.WithLabelValues("device_transfer").Inc()
		writeError(w, http.StatusConflict, "device transfer possible")
		return
	}

	account := &Account{
		UUID:     utils.NewUUID(),
		PNI:      utils.NewUUID(),
		Password: password,
		Request:  req,
		Created:  utils.CurrentTimeMillis(),
	}
	s.accounts[number] = account
	s.metrics.Registrations.WithLabelValues("ok").Inc()
	log.Infoln("[mockserver] registered", number, account.UUID)
	writeJSON(w, http.StatusOK, registration.Response{
		UUID:           account.UUID,
		Number:         number,
		PNI:            account.PNI,
		StorageCapable: false,
	})
}
