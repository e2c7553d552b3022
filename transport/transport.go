// Copyright (c) 2014 Canonical Ltd.
// Licensed under the GPLv3, see the COPYING file for details.

package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Response is a server reply whose body has been read in full.
type Response struct {
	Status int
	Body   []byte
}

// IsError reports a non-2xx status.
func (r *Response) IsError() bool {
	return r.Status < 200 || r.Status >= 300
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v interface{}) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Options configures a Transporter.
type Options struct {
	BaseURL     string
	UserAgent   string
	ProxyServer string
	RootCAs     *x509.CertPool
	// Timeout bounds every single round trip.
	Timeout time.Duration
	// RequestInterval is the minimum spacing between two requests, zero
	// disables pacing.
	RequestInterval time.Duration
}

// Transporter issues JSON requests against one base URL.
type Transporter struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// RequestOption customizes one request.
type RequestOption func(*http.Request)

// WithBasicAuth authenticates a request with the given credentials.
func WithBasicAuth(creds AuthCredentials) RequestOption {
	return func(req *http.Request) {
		req.Header.Set("Authorization", creds.AsBasic())
	}
}

// WithHeader sets an extra header on a request.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// New builds a Transporter. It fails on an unparsable proxy URL.
func New(opts Options) (*Transporter, error) {
	tr := &http.Transport{
		TLSHandshakeTimeout: 30 * time.Second,
	}
	if opts.RootCAs != nil {
		tr.TLSClientConfig = &tls.Config{RootCAs: opts.RootCAs}
	}
	if opts.ProxyServer != "" {
		u, err := url.Parse(opts.ProxyServer)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy url: %w", err)
		}
		tr.Proxy = http.ProxyURL(u)
	} else {
		tr.Proxy = http.ProxyFromEnvironment
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	t := &Transporter{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
	if opts.RequestInterval > 0 {
		t.limiter = rate.NewLimiter(rate.Every(opts.RequestInterval), 1)
	}
	return t, nil
}

// Do sends method path with body marshalled as JSON, nil meaning no body. A
// response is returned for every status code; only failures to get one at all
// produce an error, of type *Error.
func (t *Transporter) Do(ctx context.Context, method, path string, body interface{}, opts ...RequestOption) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, &Error{Method: method, Path: path, Err: err}
		}
	}

	var br io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		br = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, br)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
		req.Header.Set("X-Signal-Agent", t.userAgent)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		log.Errorf("[signup] %s %s failed: %v", method, path, err)
		return nil, &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: method, Path: path, Err: err}
	}
	log.Debugf("[signup] %s %s %d", method, path, resp.StatusCode)

	return &Response{Status: resp.StatusCode, Body: b}, nil
}

// Call is Do followed by a status check: a non-2xx reply becomes an
// *HTTPError, a 2xx body is decoded into out when out is not nil.
func (t *Transporter) Call(ctx context.Context, method, path string, body, out interface{}, opts ...RequestOption) error {
	resp, err := t.Do(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &HTTPError{Method: method, Path: path, Status: resp.Status, Body: resp.Body}
	}
	if out == nil {
		return nil
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
