// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for local-certs.
// It implements a Cobra-based CLI that builds the immutable configuration
// record from flags, environment, and the optional defaults file, runs the
// certificate pipeline, and drives the platform trust-store integration.
// The package integrates with the logger package for plain or structured
// JSON output.
package cli
