// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileFormat represents supported defaults-file formats.
type fileFormat int

const (
	// fileFormatJSON represents JSON configuration format (.json)
	fileFormatJSON fileFormat = iota
	// fileFormatYAML represents YAML configuration format (.yaml, .yml)
	fileFormatYAML
)

// fileDefaults is the schema of the optional defaults file. Only set fields
// override the built-in defaults.
type fileDefaults struct {
	Subject     Subject `json:"subject" yaml:"subject"`
	P12Password string  `json:"p12Password,omitempty" yaml:"p12Password,omitempty"`
}

// detectFileFormat determines the defaults-file format based on file extension.
// It supports .json, .yaml, and .yml extensions; unknown extensions are
// treated as JSON. Extension matching is case-insensitive.
func detectFileFormat(path string) fileFormat {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return fileFormatYAML
	default:
		return fileFormatJSON
	}
}

// loadFileDefaults reads and parses the defaults file at path.
func loadFileDefaults(path string) (fileDefaults, error) {
	var fd fileDefaults

	data, err := os.ReadFile(path)
	if err != nil {
		return fd, fmt.Errorf("config: failed to read defaults file: %w", err)
	}

	switch detectFileFormat(path) {
	case fileFormatYAML:
		if err := yaml.Unmarshal(data, &fd); err != nil {
			return fd, fmt.Errorf("config: failed to parse YAML defaults file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fd); err != nil {
			return fd, fmt.Errorf("config: failed to parse JSON defaults file: %w", err)
		}
	}

	return fd, nil
}

// apply overlays the set fields of the defaults file onto cfg.
func (fd fileDefaults) apply(cfg *Config) {
	if fd.Subject.Country != "" {
		cfg.Subject.Country = fd.Subject.Country
	}
	if fd.Subject.State != "" {
		cfg.Subject.State = fd.Subject.State
	}
	if fd.Subject.Locality != "" {
		cfg.Subject.Locality = fd.Subject.Locality
	}
	if fd.Subject.Organization != "" {
		cfg.Subject.Organization = fd.Subject.Organization
	}
	if fd.Subject.OrganizationalUnit != "" {
		cfg.Subject.OrganizationalUnit = fd.Subject.OrganizationalUnit
	}
	if fd.Subject.Email != "" {
		cfg.Subject.Email = fd.Subject.Email
	}
	if fd.P12Password != "" {
		cfg.P12Password = fd.P12Password
	}
}
