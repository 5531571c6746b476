// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"os"
	"strings"
)

// osReleasePath is the distribution identifier consulted for classification.
const osReleasePath = "/etc/os-release"

// Platform is the detected distribution family.
type Platform int

const (
	// PlatformUnsupported covers platforms without automatic trust store integration.
	PlatformUnsupported Platform = iota
	// PlatformDebian covers Debian-family distributions (Debian, Ubuntu, and derivatives).
	PlatformDebian
	// PlatformRedHat covers RedHat-family distributions (RHEL, Fedora, CentOS, and derivatives).
	PlatformRedHat
)

// String returns a human-readable platform name.
func (p Platform) String() string {
	switch p {
	case PlatformDebian:
		return "Debian family"
	case PlatformRedHat:
		return "RedHat family"
	default:
		return "unsupported"
	}
}

// Classify reads the system release descriptor and classifies the host
// distribution family. A missing descriptor or an unmatched distribution
// yields PlatformUnsupported.
func Classify() Platform {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return PlatformUnsupported
	}
	return classify(data)
}

// classify performs substring matching against known distribution family
// names. Debian is checked first since derivatives advertise it in ID_LIKE.
func classify(data []byte) Platform {
	release := strings.ToLower(string(data))

	for _, name := range []string{"debian", "ubuntu"} {
		if strings.Contains(release, name) {
			return PlatformDebian
		}
	}

	for _, name := range []string{"rhel", "red hat", "redhat", "fedora", "centos"} {
		if strings.Contains(release, name) {
			return PlatformRedHat
		}
	}

	return PlatformUnsupported
}
