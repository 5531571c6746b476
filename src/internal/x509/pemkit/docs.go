// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pemkit provides PEM encoding and decoding for the certificate
// pipeline artifacts: certificates, PKCS#1 RSA private keys, and PKCS#10
// certificate signing requests. Parsing is delegated to the battle-tested
// [github.com/cloudflare/cfssl/helpers] routines, which also verify CSR
// signatures on decode.
package pemkit
