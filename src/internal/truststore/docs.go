// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package truststore integrates the development CA with the operating
// system trust store. It classifies the host distribution family from the
// system release descriptor and selects a platform strategy: Debian-family
// and RedHat-family hosts get their anchor directory populated and the
// trust cache refreshed, while unsupported platforms receive manual
// instructions as a no-op success.
package truststore
