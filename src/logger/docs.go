// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides logging abstractions for local-certs.
// It defines a Logger interface with two implementations: CLILogger for
// human-readable command-line output and JSONLogger for structured JSON
// line output suitable for automation.
package logger
