// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigHome is the environment variable supplying the base configuration
// directory. When unset, $HOME/.config is used.
const EnvConfigHome = "XDG_CONFIG_HOME"

// EnvConfigFile optionally points to a YAML or JSON file overriding the
// subject-field and PKCS#12 password defaults.
const EnvConfigFile = "LOCAL_CERTS_CONFIG_FILE"

var (
	// ErrEmptyDomain indicates that the configured domain is empty.
	ErrEmptyDomain = errors.New("config: domain must not be empty")

	// ErrInvalidValidDays indicates that the configured validity period is not positive.
	ErrInvalidValidDays = errors.New("config: valid-days must be at least 1")
)

// Subject holds the X.509 subject fields applied to both the CA and the
// leaf certificate.
type Subject struct {
	Country            string `json:"country" yaml:"country"`
	State              string `json:"state" yaml:"state"`
	Locality           string `json:"locality" yaml:"locality"`
	Organization       string `json:"organization" yaml:"organization"`
	OrganizationalUnit string `json:"organizationalUnit" yaml:"organizationalUnit"`
	Email              string `json:"email" yaml:"email"`
}

// Config is the immutable configuration record for one invocation.
// It is built once by the argument parser and never mutated afterwards.
type Config struct {
	// Domain is the common name and primary SAN of the leaf certificate.
	Domain string

	// ValidDays is the validity window, in days, of both CA and leaf.
	ValidDays int

	// OutputDir is where all certificate artifacts are written.
	OutputDir string

	// Subject holds the X.509 subject fields.
	Subject Subject

	// P12Password protects the exported PKCS#12 archive.
	P12Password string

	// Install requests adding the CA to the system trust store.
	Install bool

	// Uninstall requests removing the CA from the system trust store.
	Uninstall bool
}

// ConfigHome resolves the base configuration directory from the environment,
// falling back to $HOME/.config when the variable is unset or empty.
func ConfigHome() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Last resort for environments without a resolvable home.
		return ".config"
	}
	return filepath.Join(home, ".config")
}

// DefaultOutputDir returns the default artifact directory under the
// configuration home.
func DefaultOutputDir() string {
	return filepath.Join(ConfigHome(), "local-certs")
}

// Defaults returns a Config populated with the built-in defaults, overlaid
// with any values from the optional defaults file referenced by
// [EnvConfigFile]. A missing or unreadable defaults file is ignored.
func Defaults() Config {
	cfg := Config{
		Domain:    "localhost",
		ValidDays: 365,
		OutputDir: DefaultOutputDir(),
		Subject: Subject{
			Country:            "US",
			State:              "California",
			Locality:           "San Francisco",
			Organization:       "Local Development",
			OrganizationalUnit: "Engineering",
			Email:              "dev@localhost",
		},
		P12Password: "p12pass",
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if fd, err := loadFileDefaults(path); err == nil {
			fd.apply(&cfg)
		}
	}

	return cfg
}

// Validate checks the configuration record before any file is touched.
func (c Config) Validate() error {
	if c.Domain == "" {
		return ErrEmptyDomain
	}
	if c.ValidDays < 1 {
		return ErrInvalidValidDays
	}
	return nil
}

// EnsureOutputDir idempotently creates the output directory.
func (c Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return fmt.Errorf("config: failed to create output directory: %w", err)
	}
	return nil
}
