// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command local-certs creates a self-signed development certificate
// authority and a leaf certificate for a domain, and can install or remove
// the CA in the operating system trust store.
//
// Usage:
//
//	local-certs [flags]
//
// Common invocations:
//
//	# Generate certificates for localhost in the default output directory
//	local-certs
//
//	# Generate certificates for example.test, valid 30 days, and trust the CA
//	local-certs --domain example.test --valid-days 30 --install
//
//	# Remove the CA from the system trust store
//	local-certs --uninstall
package main
