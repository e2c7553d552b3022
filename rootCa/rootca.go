package rootCa

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// ErrNoCertificates is returned when a PEM file holds no usable certificate.
var ErrNoCertificates = errors.New("no certificates found in PEM")

// Load returns the pool to verify the server against: the certificates in
// the given PEM file, or nil to fall back to the system roots when the path
// is empty.
func Load(rootca string) (*x509.CertPool, error) {
	if rootca == "" {
		return nil, nil
	}
	pem, err := os.ReadFile(rootca)
	if err != nil {
		return nil, fmt.Errorf("reading root CA: %w", err)
	}
	return FromPEM(pem)
}

// FromPEM builds a pool from PEM encoded certificates.
func FromPEM(pem []byte) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		log.Errorln("[signup] cannot load PEM")
		return nil, ErrNoCertificates
	}
	return pool, nil
}
