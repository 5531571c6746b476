// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgen

import "path/filepath"

// Artifacts resolves the on-disk layout of a pipeline run. The persistent
// set is six files; the CSR and the signing-extension descriptor are
// transient and removed before the run completes.
type Artifacts struct {
	Dir    string
	Domain string
}

// CAKey returns the path of the CA private key.
func (a Artifacts) CAKey() string { return filepath.Join(a.Dir, "rootCA.key") }

// CACert returns the path of the CA certificate.
func (a Artifacts) CACert() string { return filepath.Join(a.Dir, "rootCA.pem") }

// DomainKey returns the path of the domain private key.
func (a Artifacts) DomainKey() string { return filepath.Join(a.Dir, a.Domain+".key") }

// DomainCert returns the path of the signed leaf certificate.
func (a Artifacts) DomainCert() string { return filepath.Join(a.Dir, a.Domain+".crt") }

// Bundle returns the path of the combined leaf+CA PEM bundle.
func (a Artifacts) Bundle() string { return filepath.Join(a.Dir, a.Domain+".pem") }

// P12 returns the path of the PKCS#12 archive.
func (a Artifacts) P12() string { return filepath.Join(a.Dir, a.Domain+".p12") }

// CSR returns the path of the transient certificate signing request.
func (a Artifacts) CSR() string { return filepath.Join(a.Dir, a.Domain+".csr") }

// Ext returns the path of the transient signing-extension descriptor.
func (a Artifacts) Ext() string { return filepath.Join(a.Dir, a.Domain+".ext") }
