// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certgen implements the certificate pipeline: it generates a
// 2048-bit RSA development CA, issues a leaf certificate for the configured
// domain through a PKCS#10 CSR and an openssl-style signing-extension
// descriptor, writes a combined PEM bundle, and exports a password-protected
// PKCS#12 archive. The CSR and the extension descriptor are transient
// artifacts removed once the leaf certificate is signed.
//
// The pipeline is strictly sequential with no retries: the first failing
// step aborts the run and leaves any artifacts written so far in place.
package certgen
