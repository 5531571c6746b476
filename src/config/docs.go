// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config defines the immutable configuration record for a
// local-certs invocation. Defaults come from built-in values, the
// XDG_CONFIG_HOME environment variable for the base directory, and an
// optional YAML or JSON defaults file for subject fields and the PKCS#12
// password. The CLI layer overlays flag values on top.
package config
