// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgen_test

import (
	"context"
	"crypto/x509"
	"encoding/asn1"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkcs12 "software.sslmate.com/src/go-pkcs12"

	"github.com/H0llyW00dzZ/local-certs/src/config"
	"github.com/H0llyW00dzZ/local-certs/src/internal/certgen"
	"github.com/H0llyW00dzZ/local-certs/src/logger"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Defaults()
	cfg.Domain = "example.test"
	cfg.ValidDays = 30
	cfg.OutputDir = t.TempDir()
	return cfg
}

func testLogger() logger.Logger {
	log := logger.NewCLILogger()
	log.SetOutput(io.Discard)
	return log
}

func runPipeline(t *testing.T, cfg config.Config) *certgen.Result {
	t.Helper()

	result, err := certgen.New(cfg, testLogger()).Run(context.Background())
	require.NoError(t, err, "Run() error")
	require.NotNil(t, result, "Run() returned nil result")
	return result
}

func TestPipelineArtifacts(t *testing.T) {
	cfg := testConfig(t)
	result := runPipeline(t, cfg)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Exactly Six Persistent Files",
			testFunc: func(t *testing.T) {
				entries, err := os.ReadDir(cfg.OutputDir)
				require.NoError(t, err)

				assert.Len(t, entries, 6, "expected exactly 6 persistent files")
			},
		},
		{
			name: "Transient Artifacts Removed",
			testFunc: func(t *testing.T) {
				for _, path := range []string{result.Artifacts.CSR(), result.Artifacts.Ext()} {
					_, err := os.Stat(path)
					assert.True(t, os.IsNotExist(err), "transient artifact %s still exists", path)
				}
			},
		},
		{
			name: "Bundle Is Leaf Followed By CA",
			testFunc: func(t *testing.T) {
				leaf, err := os.ReadFile(result.Artifacts.DomainCert())
				require.NoError(t, err)
				ca, err := os.ReadFile(result.Artifacts.CACert())
				require.NoError(t, err)
				bundle, err := os.ReadFile(result.Artifacts.Bundle())
				require.NoError(t, err)

				assert.Equal(t, append(leaf, ca...), bundle, "bundle is not leaf+CA concatenation")
			},
		},
		{
			name: "Key Files Owner Only",
			testFunc: func(t *testing.T) {
				for _, path := range []string{result.Artifacts.CAKey(), result.Artifacts.DomainKey(), result.Artifacts.P12()} {
					info, err := os.Stat(path)
					require.NoError(t, err)

					assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "unexpected mode for %s", path)
				}
			},
		},
		{
			name: "Certificate Files World Readable",
			testFunc: func(t *testing.T) {
				for _, path := range []string{result.Artifacts.CACert(), result.Artifacts.DomainCert(), result.Artifacts.Bundle()} {
					info, err := os.Stat(path)
					require.NoError(t, err)

					assert.Equal(t, os.FileMode(0644), info.Mode().Perm(), "unexpected mode for %s", path)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestLeafCertificateContents(t *testing.T) {
	cfg := testConfig(t)
	result := runPipeline(t, cfg)
	leaf := result.DomainCert

	assert.Equal(t, "example.test", leaf.Subject.CommonName, "unexpected leaf CommonName")
	assert.ElementsMatch(t, []string{"example.test", "*.example.test", "localhost"}, leaf.DNSNames, "unexpected DNS SANs")

	require.Len(t, leaf.IPAddresses, 1, "expected one IP SAN")
	assert.True(t, leaf.IPAddresses[0].Equal(net.ParseIP("127.0.0.1")), "expected 127.0.0.1 IP SAN, got %s", leaf.IPAddresses[0])

	wantExpiry := time.Now().AddDate(0, 0, 30)
	assert.WithinDuration(t, wantExpiry, leaf.NotAfter, time.Hour, "unexpected leaf expiry")
	assert.Equal(t, x509.SHA256WithRSA, leaf.SignatureAlgorithm, "expected SHA-256 RSA signature")
	assert.Contains(t, leaf.ExtKeyUsage, x509.ExtKeyUsageServerAuth, "expected server auth EKU")
	assert.False(t, leaf.IsCA, "leaf must not be a CA")
}

// subjectEmail extracts the emailAddress attribute from a parsed subject.
func subjectEmail(t *testing.T, cert *x509.Certificate) string {
	t.Helper()

	oidEmailAddress := asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}
	for _, attr := range cert.Subject.Names {
		if attr.Type.Equal(oidEmailAddress) {
			email, ok := attr.Value.(string)
			require.True(t, ok, "emailAddress attribute is not a string")
			return email
		}
	}
	return ""
}

func TestCertificatesCarrySubjectEmail(t *testing.T) {
	cfg := testConfig(t)
	cfg.Subject.Email = "dev@example.test"
	result := runPipeline(t, cfg)

	assert.Equal(t, "dev@example.test", subjectEmail(t, result.DomainCert), "leaf subject lost the emailAddress attribute")
	assert.Equal(t, "dev@example.test", subjectEmail(t, result.CACert), "CA subject lost the emailAddress attribute")
}

func TestLeafVerifiesAgainstCA(t *testing.T) {
	cfg := testConfig(t)
	result := runPipeline(t, cfg)

	roots := x509.NewCertPool()
	roots.AddCert(result.CACert)

	_, err := result.DomainCert.Verify(x509.VerifyOptions{
		Roots:   roots,
		DNSName: "example.test",
	})
	assert.NoError(t, err, "leaf does not verify against generated CA")

	_, err = result.DomainCert.Verify(x509.VerifyOptions{
		Roots:   roots,
		DNSName: "sub.example.test",
	})
	assert.NoError(t, err, "wildcard SAN does not cover subdomains")
}

func TestCACertificateContents(t *testing.T) {
	cfg := testConfig(t)
	result := runPipeline(t, cfg)
	ca := result.CACert

	assert.True(t, ca.IsCA, "CA certificate must carry CA basic constraint")
	assert.Equal(t, ca.Subject.String(), ca.Issuer.String(), "CA certificate must be self-signed")
	assert.NotZero(t, ca.KeyUsage&x509.KeyUsageCertSign, "CA must allow certificate signing")
	assert.Equal(t, []string{"US"}, ca.Subject.Country, "unexpected subject country")
	assert.Equal(t, []string{"Local Development"}, ca.Subject.Organization, "unexpected subject organization")
}

func TestPKCS12RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	result := runPipeline(t, cfg)

	pfxData, err := os.ReadFile(result.Artifacts.P12())
	require.NoError(t, err)

	key, cert, caCerts, err := pkcs12.DecodeChain(pfxData, cfg.P12Password)
	require.NoError(t, err, "DecodeChain() error")

	assert.NotNil(t, key, "archive is missing the private key")
	assert.True(t, cert.Equal(result.DomainCert), "archive leaf differs from generated leaf")

	require.Len(t, caCerts, 1, "expected CA chain of length 1")
	assert.True(t, caCerts[0].Equal(result.CACert), "archive CA differs from generated CA")
}

func TestPKCS12WrongPassword(t *testing.T) {
	cfg := testConfig(t)
	result := runPipeline(t, cfg)

	pfxData, err := os.ReadFile(result.Artifacts.P12())
	require.NoError(t, err)

	_, _, _, err = pkcs12.DecodeChain(pfxData, "wrong")
	assert.Error(t, err, "expected decode failure with wrong password")
}

func TestRunCancelledContext(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := certgen.New(cfg, testLogger()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled, "expected context cancellation")
}

func TestRunUnwritableOutputDir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	cfg := testConfig(t)
	readonly := filepath.Join(cfg.OutputDir, "readonly")
	require.NoError(t, os.Mkdir(readonly, 0555))
	cfg.OutputDir = readonly

	_, err := certgen.New(cfg, testLogger()).Run(context.Background())
	assert.Error(t, err, "expected failure writing into read-only directory")
}
