package skiff_http

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net"
	"os"
)

var (
	ErrNoCertificate = errors.New("no certificate found in PEM file")
)

// LoadCertificate reads a single PEM file holding a certificate chain and
// exactly one PKCS#8-encoded private key. Zero or more than one key is a
// configuration error.
func LoadCertificate(path string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, err
	}

	var chain [][]byte
	var keys [][]byte
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		switch block.Type {
		case "CERTIFICATE":
			chain = append(chain, block.Bytes)
		case "PRIVATE KEY":
			keys = append(keys, block.Bytes)
		}
	}

	if len(chain) == 0 {
		return tls.Certificate{}, fmt.Errorf("%w: %s", ErrNoCertificate, path)
	}
	switch len(keys) {
	case 0:
		return tls.Certificate{}, fmt.Errorf("no PKCS8-encoded private key found in %s", path)
	case 1:
	default:
		return tls.Certificate{}, fmt.Errorf("more than one PKCS8-encoded private key found in %s", path)
	}

	key, err := x509.ParsePKCS8PrivateKey(keys[0])
	if err != nil {
		return tls.Certificate{}, err
	}
	return tls.Certificate{Certificate: chain, PrivateKey: key}, nil
}

// listenTLS binds Address and wraps the listener with the certificate
// loaded from CertificatePath. The connection driver is unchanged; the
// TLS connection satisfies the same half-close the plain one does.
func (a *Application[State]) listenTLS() (net.Listener, error) {
	cert, err := LoadCertificate(a.CertificatePath)
	if err != nil {
		return nil, err
	}
	config := &tls.Config{Certificates: []tls.Certificate{cert}}
	return tls.Listen("tcp", a.Address, config)
}
