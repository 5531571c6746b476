// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pemkit

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/helpers"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("pemkit: invalid PEM block")

	// ErrParseCertificate indicates a failure to parse a certificate from the provided data.
	ErrParseCertificate = errors.New("pemkit: failed to parse certificate")

	// ErrParseCSR indicates a failure to parse a certificate signing request from the provided data.
	ErrParseCSR = errors.New("pemkit: failed to parse certificate request")
)

// Codec encodes and decodes the PEM artifacts the certificate pipeline
// produces. It maintains internal configuration such as the PEM block types.
type Codec struct {
	certBlockType string
	keyBlockType  string
	csrBlockType  string
}

// New creates a new Codec with default block types.
func New() *Codec {
	return &Codec{
		certBlockType: "CERTIFICATE",
		keyBlockType:  "RSA PRIVATE KEY",
		csrBlockType:  "CERTIFICATE REQUEST",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Codec) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// EncodeCert encodes a certificate to PEM format.
func (c *Codec) EncodeCert(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeRSAKey encodes an RSA private key to PKCS#1 PEM format,
// matching the layout produced by `openssl genrsa`.
func (c *Codec) EncodeRSAKey(key *rsa.PrivateKey) []byte {
	block := pem.Block{
		Type:  c.keyBlockType,
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return pem.EncodeToMemory(&block)
}

// EncodeCSR encodes a raw DER certificate signing request to PEM format.
func (c *Codec) EncodeCSR(der []byte) []byte {
	block := pem.Block{
		Type:  c.csrBlockType,
		Bytes: der,
	}
	return pem.EncodeToMemory(&block)
}

// ParseCert parses a single PEM certificate from data.
func (c *Codec) ParseCert(data []byte) (*x509.Certificate, error) {
	if !c.IsPEM(data) {
		return nil, ErrInvalidPEMBlock
	}

	cert, err := helpers.ParseCertificatePEM(data)
	if err != nil {
		return nil, ErrParseCertificate
	}

	return cert, nil
}

// ParseCerts parses one or more concatenated PEM certificates from data.
func (c *Codec) ParseCerts(data []byte) ([]*x509.Certificate, error) {
	if !c.IsPEM(data) {
		return nil, ErrInvalidPEMBlock
	}

	certs, err := helpers.ParseCertificatesPEM(data)
	if err != nil {
		return nil, ErrParseCertificate
	}

	return certs, nil
}

// ParseCSR parses a PEM certificate signing request from data and verifies
// its signature.
func (c *Codec) ParseCSR(data []byte) (*x509.CertificateRequest, error) {
	if !c.IsPEM(data) {
		return nil, ErrInvalidPEMBlock
	}

	csr, err := helpers.ParseCSRPEM(data)
	if err != nil {
		return nil, ErrParseCSR
	}

	return csr, nil
}
