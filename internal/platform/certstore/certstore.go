// Package certstore looks up certificates in the local trusted-root store and
// in the machine store of remote hosts.
//
// The local store is a directory of PEM files, the conventional layout for
// trust anchors distributed by configuration management. Certificates are
// addressed by thumbprint (SHA-1 of the DER encoding, upper-case hex) or by
// subject common name.
package certstore

import (
	"context"
	"crypto/sha1" //nolint:gosec // Thumbprints are identifiers, not integrity checks
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdnfabric/sdnctl/internal/credentials"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
)

var (
	// ErrNotFound is returned when no certificate matches a lookup.
	ErrNotFound = errors.New("certificate not found")

	// ErrDuplicate is returned when a subject lookup matches more than one
	// certificate and the caller cannot pick one safely.
	ErrDuplicate = errors.New("duplicate certificate")
)

// Store resolves certificates from the local trusted-root store.
type Store interface {
	// ByThumbprint returns the certificate with the given thumbprint,
	// or ErrNotFound.
	ByThumbprint(thumbprint string) (*x509.Certificate, error)

	// BySubjectCN returns the single certificate whose subject common
	// name matches. Zero matches yield ErrNotFound, more than one
	// ErrDuplicate.
	BySubjectCN(cn string) (*x509.Certificate, error)
}

// Thumbprint computes the SHA-1 thumbprint of a certificate, upper-case hex.
func Thumbprint(cert *x509.Certificate) string {
	sum := sha1.Sum(cert.Raw) //nolint:gosec // Identifier only
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// DirStore reads a directory of PEM files as the trusted-root store.
type DirStore struct {
	dir string
}

var _ Store = (*DirStore)(nil)

// NewDirStore creates a store over the given directory.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// ByThumbprint implements Store.
func (s *DirStore) ByThumbprint(thumbprint string) (*x509.Certificate, error) {
	want := strings.ToUpper(thumbprint)
	certs, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, cert := range certs {
		if Thumbprint(cert) == want {
			return cert, nil
		}
	}
	return nil, fmt.Errorf("thumbprint %s in %s: %w", want, s.dir, ErrNotFound)
}

// BySubjectCN implements Store.
func (s *DirStore) BySubjectCN(cn string) (*x509.Certificate, error) {
	certs, err := s.load()
	if err != nil {
		return nil, err
	}

	var matches []*x509.Certificate
	for _, cert := range certs {
		if cert.Subject.CommonName == cn {
			matches = append(matches, cert)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("subject CN=%s in %s: %w", cn, s.dir, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("subject CN=%s matches %d certificates in %s: %w", cn, len(matches), s.dir, ErrDuplicate)
	}
}

// load parses every PEM file in the store directory. Files that are not
// certificates are skipped.
func (s *DirStore) load() ([]*x509.Certificate, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading trusted-root store %s: %w", s.dir, err)
	}

	var certs []*x509.Certificate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name())) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		for {
			var block *pem.Block
			block, data = pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != "CERTIFICATE" {
				continue
			}
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				continue
			}
			certs = append(certs, cert)
		}
	}
	return certs, nil
}

// RemoteThumbprint asks a host's agent for the thumbprint of the certificate
// bound to a subject in the host's machine store.
func RemoteThumbprint(ctx context.Context, runner remote.Runner, host string, cred credentials.Credential, subjectCN string) (string, error) {
	out, err := runner.Run(ctx, host, cred, remote.OpCertThumbprint, map[string]string{
		"subject": "CN=" + subjectCN,
	})
	if err != nil {
		return "", err
	}
	thumbprint := strings.ToUpper(strings.TrimSpace(out))
	if thumbprint == "" {
		return "", fmt.Errorf("host %s reported no certificate for CN=%s: %w", host, subjectCN, ErrNotFound)
	}
	return thumbprint, nil
}
