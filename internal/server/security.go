package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/counterparty-client/internal/model"
)

// NewListener returns a TLS security layer when both files are set and a
// plain one otherwise.
func NewListener(certFile, keyFile string) model.SecurityLayer {
	if certFile != "" && keyFile != "" {
		return NewTLSListener(certFile, keyFile)
	}
	return NewPlainListener()
}

// TLSListener serves TLS with a certificate loaded at Listen time.
type TLSListener struct {
	certFile string
	keyFile  string
}

// NewTLSListener creates a new TLSListener instance.
//
// Parameters:
//   - certFile: Path to the PEM certificate
//   - keyFile: Path to the PEM private key
func NewTLSListener(certFile, keyFile string) *TLSListener {
	return &TLSListener{
		certFile: certFile,
		keyFile:  keyFile,
	}
}

// Listen loads the key pair and opens a TLS listener on addr.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return tls.Listen(protocol, addr, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
}

// PlainListener opens unencrypted listeners.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
