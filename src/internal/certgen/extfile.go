// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgen

import (
	"fmt"
	"net"

	"github.com/H0llyW00dzZ/local-certs/src/internal/helper/gc"
)

// extFile is the signing-extension descriptor applied when the CA signs the
// leaf certificate. It carries the fixed subject alternative name set: the
// domain, a wildcard of the domain, localhost, and 127.0.0.1.
type extFile struct {
	Domain      string
	DNSNames    []string
	IPAddresses []net.IP
}

// newExtFile builds the descriptor for domain.
func newExtFile(domain string) *extFile {
	return &extFile{
		Domain:      domain,
		DNSNames:    []string{domain, "*." + domain, "localhost"},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1)},
	}
}

// Render serializes the descriptor as an openssl-style x509v3 extension file.
// The rendered form is written next to the CSR so the signing inputs are
// inspectable while the pipeline runs.
func (e *extFile) Render() []byte {
	buf := gc.Default.Get()

	defer func() {
		buf.Reset()         // Reset the buffer to prevent data leaks
		gc.Default.Put(buf) // Return the buffer to the pool for reuse
	}()

	buf.WriteString("authorityKeyIdentifier=keyid,issuer\n")
	buf.WriteString("basicConstraints=CA:FALSE\n")
	buf.WriteString("keyUsage = digitalSignature, nonRepudiation, keyEncipherment, dataEncipherment\n")
	buf.WriteString("subjectAltName = @alt_names\n")
	buf.WriteString("\n[alt_names]\n")
	for i, name := range e.DNSNames {
		buf.WriteString(fmt.Sprintf("DNS.%d = %s\n", i+1, name))
	}
	for i, ip := range e.IPAddresses {
		buf.WriteString(fmt.Sprintf("IP.%d = %s\n", i+1, ip))
	}

	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	return out
}
