// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgen

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"math/big"
	"os"
	"time"

	pkcs12 "software.sslmate.com/src/go-pkcs12"

	"github.com/H0llyW00dzZ/local-certs/src/config"
	"github.com/H0llyW00dzZ/local-certs/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/local-certs/src/internal/x509/pemkit"
	"github.com/H0llyW00dzZ/local-certs/src/logger"
)

// rsaKeyBits is the key size for both the CA and the domain key.
const rsaKeyBits = 2048

// caCommonName is the common name of the generated development CA.
const caCommonName = "Local Development CA"

// oidEmailAddress is the PKCS#9 emailAddress attribute carried in the
// certificate subject, matching `openssl req -subj .../emailAddress=`.
var oidEmailAddress = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}

// serialLimit bounds random serial numbers to 128 bits.
var serialLimit = new(big.Int).Lsh(big.NewInt(1), 128)

// Generator runs the certificate pipeline for one configuration record.
type Generator struct {
	cfg   config.Config
	codec *pemkit.Codec
	log   logger.Logger
}

// Result reports the persistent artifacts of a completed pipeline run.
type Result struct {
	Artifacts Artifacts

	// CACert and DomainCert are the parsed generated certificates,
	// used for the summary table and trust-store integration.
	CACert     *x509.Certificate
	DomainCert *x509.Certificate
}

// New creates a Generator for cfg that reports progress through log.
func New(cfg config.Config, log logger.Logger) *Generator {
	return &Generator{
		cfg:   cfg,
		codec: pemkit.New(),
		log:   log,
	}
}

// Run executes the pipeline: CA key and certificate, domain key and CSR,
// signing-extension descriptor, leaf signing, combined PEM bundle, PKCS#12
// export, permission fixup, and transient cleanup. The first failing step
// aborts the run; partially written artifacts are left in place.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	art := Artifacts{Dir: g.cfg.OutputDir, Domain: g.cfg.Domain}
	now := time.Now()
	notAfter := now.AddDate(0, 0, g.cfg.ValidDays)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.log.Printf("Generating CA private key (%d-bit RSA)...", rsaKeyBits)
	caKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to generate CA key: %w", err)
	}
	if err := os.WriteFile(art.CAKey(), g.codec.EncodeRSAKey(caKey), 0600); err != nil {
		return nil, fmt.Errorf("certgen: failed to write CA key: %w", err)
	}

	g.log.Println("Creating self-signed CA certificate...")
	caCert, err := g.createCA(caKey, now, notAfter)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(art.CACert(), g.codec.EncodeCert(caCert), 0644); err != nil {
		return nil, fmt.Errorf("certgen: failed to write CA certificate: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.log.Printf("Generating private key for %s (%d-bit RSA)...", g.cfg.Domain, rsaKeyBits)
	domainKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to generate domain key: %w", err)
	}
	if err := os.WriteFile(art.DomainKey(), g.codec.EncodeRSAKey(domainKey), 0600); err != nil {
		return nil, fmt.Errorf("certgen: failed to write domain key: %w", err)
	}

	g.log.Printf("Creating certificate signing request for %s...", g.cfg.Domain)
	csrDER, err := x509.CreateCertificateRequest(rand.Reader, &x509.CertificateRequest{
		Subject:            g.subjectName(g.cfg.Domain),
		SignatureAlgorithm: x509.SHA256WithRSA,
	}, domainKey)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to create CSR: %w", err)
	}
	if err := os.WriteFile(art.CSR(), g.codec.EncodeCSR(csrDER), 0644); err != nil {
		return nil, fmt.Errorf("certgen: failed to write CSR: %w", err)
	}

	ext := newExtFile(g.cfg.Domain)
	if err := os.WriteFile(art.Ext(), ext.Render(), 0644); err != nil {
		return nil, fmt.Errorf("certgen: failed to write extension descriptor: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.log.Printf("Signing certificate for %s with the CA...", g.cfg.Domain)
	leafCert, err := g.signCSR(art, ext, caCert, caKey, now, notAfter)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(art.DomainCert(), g.codec.EncodeCert(leafCert), 0644); err != nil {
		return nil, fmt.Errorf("certgen: failed to write domain certificate: %w", err)
	}

	g.log.Println("Writing combined PEM bundle...")
	if err := g.writeBundle(art, leafCert, caCert); err != nil {
		return nil, err
	}

	g.log.Println("Exporting PKCS#12 archive...")
	pfxData, err := pkcs12.Modern.Encode(domainKey, leafCert, []*x509.Certificate{caCert}, g.cfg.P12Password)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to encode PKCS#12 archive: %w", err)
	}
	if err := os.WriteFile(art.P12(), pfxData, 0600); err != nil {
		return nil, fmt.Errorf("certgen: failed to write PKCS#12 archive: %w", err)
	}

	if err := g.applyPermissions(art); err != nil {
		return nil, err
	}

	if err := g.removeTransient(art); err != nil {
		return nil, err
	}

	return &Result{
		Artifacts:  art,
		CACert:     caCert,
		DomainCert: leafCert,
	}, nil
}

// createCA self-signs the CA certificate with the configured subject fields
// and validity window.
func (g *Generator) createCA(key *rsa.PrivateKey, notBefore, notAfter time.Time) (*x509.Certificate, error) {
	serial, err := randomSerial()
	if err != nil {
		return nil, err
	}

	skid, err := subjectKeyID(&key.PublicKey)
	if err != nil {
		return nil, err
	}

	tpl := &x509.Certificate{
		SerialNumber:       serial,
		Subject:            g.subjectName(caCommonName),
		NotBefore:          notBefore,
		NotAfter:           notAfter,
		SignatureAlgorithm: x509.SHA256WithRSA,

		SubjectKeyId: skid,
		KeyUsage:     x509.KeyUsageCertSign | x509.KeyUsageCRLSign,

		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLenZero:        true,
	}

	der, err := x509.CreateCertificate(rand.Reader, tpl, tpl, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to self-sign CA certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to parse CA certificate: %w", err)
	}

	return cert, nil
}

// signCSR re-parses the CSR artifact from disk, verifies it, and signs it
// with the CA applying the extension descriptor. Reading the CSR back mirrors
// how an external signer would consume it and validates the artifact we just
// produced.
func (g *Generator) signCSR(art Artifacts, ext *extFile, caCert *x509.Certificate, caKey *rsa.PrivateKey, notBefore, notAfter time.Time) (*x509.Certificate, error) {
	csrPEM, err := os.ReadFile(art.CSR())
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to read CSR: %w", err)
	}

	csr, err := g.codec.ParseCSR(csrPEM)
	if err != nil {
		return nil, err
	}

	serial, err := randomSerial()
	if err != nil {
		return nil, err
	}

	tpl := &x509.Certificate{
		SerialNumber: serial,
		// Parsing the CSR leaves non-standard attributes such as emailAddress
		// in Subject.Names, which CreateCertificate ignores when marshaling.
		// Rebuild the subject from the configured fields so the leaf carries
		// the same subject the CSR was created with.
		Subject:            g.subjectName(csr.Subject.CommonName),
		NotBefore:          notBefore,
		NotAfter:           notAfter,
		SignatureAlgorithm: x509.SHA256WithRSA,

		// keyUsage and SANs from the extension descriptor.
		KeyUsage: x509.KeyUsageDigitalSignature | x509.KeyUsageContentCommitment |
			x509.KeyUsageKeyEncipherment | x509.KeyUsageDataEncipherment,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:    ext.DNSNames,
		IPAddresses: ext.IPAddresses,

		BasicConstraintsValid: true,
		IsCA:                  false,
	}

	der, err := x509.CreateCertificate(rand.Reader, tpl, caCert, csr.PublicKey, caKey)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to sign domain certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to parse domain certificate: %w", err)
	}

	return cert, nil
}

// writeBundle concatenates the leaf certificate followed by the CA
// certificate into the combined PEM file.
func (g *Generator) writeBundle(art Artifacts, leafCert, caCert *x509.Certificate) error {
	buf := gc.Default.Get()

	defer func() {
		buf.Reset()         // Reset the buffer to prevent data leaks
		gc.Default.Put(buf) // Return the buffer to the pool for reuse
	}()

	if _, err := buf.Write(g.codec.EncodeCert(leafCert)); err != nil {
		return fmt.Errorf("certgen: failed to assemble bundle: %w", err)
	}
	if _, err := buf.Write(g.codec.EncodeCert(caCert)); err != nil {
		return fmt.Errorf("certgen: failed to assemble bundle: %w", err)
	}

	// The bundle must decode back to exactly the leaf and CA certificates.
	certs, err := g.codec.ParseCerts(buf.Bytes())
	if err != nil {
		return fmt.Errorf("certgen: bundle does not decode: %w", err)
	}
	if len(certs) != 2 {
		return fmt.Errorf("certgen: bundle holds %d certificates, want 2", len(certs))
	}

	if err := os.WriteFile(art.Bundle(), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("certgen: failed to write bundle: %w", err)
	}

	return nil
}

// applyPermissions restricts key-bearing files to the owner and leaves
// certificate files group/world readable. WriteFile permissions only apply
// on creation, so re-runs over existing artifacts need the explicit chmod.
func (g *Generator) applyPermissions(art Artifacts) error {
	perms := map[string]os.FileMode{
		art.CAKey():      0600,
		art.DomainKey():  0600,
		art.P12():        0600,
		art.CACert():     0644,
		art.DomainCert(): 0644,
		art.Bundle():     0644,
	}

	for path, mode := range perms {
		if err := os.Chmod(path, mode); err != nil {
			return fmt.Errorf("certgen: failed to set permissions on %s: %w", path, err)
		}
	}

	return nil
}

// removeTransient deletes the CSR and the extension descriptor.
func (g *Generator) removeTransient(art Artifacts) error {
	for _, path := range []string{art.CSR(), art.Ext()} {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("certgen: failed to remove transient artifact %s: %w", path, err)
		}
	}
	return nil
}

// subjectName builds the X.509 subject from the configured fields.
func (g *Generator) subjectName(commonName string) pkix.Name {
	s := g.cfg.Subject
	name := pkix.Name{
		CommonName:         commonName,
		Country:            []string{s.Country},
		Province:           []string{s.State},
		Locality:           []string{s.Locality},
		Organization:       []string{s.Organization},
		OrganizationalUnit: []string{s.OrganizationalUnit},
	}

	if s.Email != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type: oidEmailAddress,
			// emailAddress is an IA5String, which encoding/asn1 won't pick for plain strings.
			Value: asn1.RawValue{Tag: asn1.TagIA5String, Bytes: []byte(s.Email)},
		})
	}

	return name
}

// randomSerial returns a random 128-bit certificate serial number.
func randomSerial() (*big.Int, error) {
	serial, err := rand.Int(rand.Reader, serialLimit)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to generate serial number: %w", err)
	}
	return serial, nil
}

// subjectKeyID computes the SHA-1 key identifier over the subject public key
// bit string, per RFC 5280 section 4.2.1.2 method 1.
func subjectKeyID(pub *rsa.PublicKey) ([]byte, error) {
	spkiASN1, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("certgen: failed to encode public key: %w", err)
	}

	var spki struct {
		Algorithm        pkix.AlgorithmIdentifier
		SubjectPublicKey asn1.BitString
	}
	if _, err := asn1.Unmarshal(spkiASN1, &spki); err != nil {
		return nil, fmt.Errorf("certgen: failed to decode public key: %w", err)
	}

	sum := sha1.Sum(spki.SubjectPublicKey.Bytes)
	return sum[:], nil
}
