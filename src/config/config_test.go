// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/local-certs/src/config"
)

func TestDefaults(t *testing.T) {
	t.Setenv(config.EnvConfigHome, "/tmp/xdg-test")
	t.Setenv(config.EnvConfigFile, "")

	cfg := config.Defaults()

	assert.Equal(t, "localhost", cfg.Domain)
	assert.Equal(t, 365, cfg.ValidDays)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "local-certs"), cfg.OutputDir)
	assert.Equal(t, "p12pass", cfg.P12Password)
	assert.Equal(t, "US", cfg.Subject.Country)
	assert.False(t, cfg.Install)
	assert.False(t, cfg.Uninstall)
}

func TestConfigHomeFallback(t *testing.T) {
	t.Setenv(config.EnvConfigHome, "")

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config"), config.ConfigHome())
}

func TestDefaultsFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
	}{
		{
			name:     "YAML Defaults",
			fileName: "defaults.yaml",
			content: `subject:
  country: DE
  organization: ACME
p12Password: hunter2
`,
		},
		{
			name:     "JSON Defaults",
			fileName: "defaults.json",
			content:  `{"subject":{"country":"DE","organization":"ACME"},"p12Password":"hunter2"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.fileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			t.Setenv(config.EnvConfigFile, path)

			cfg := config.Defaults()

			assert.Equal(t, "DE", cfg.Subject.Country, "file default did not override country")
			assert.Equal(t, "ACME", cfg.Subject.Organization, "file default did not override organization")
			assert.Equal(t, "hunter2", cfg.P12Password, "file default did not override password")
			// Fields absent from the file keep the built-in defaults.
			assert.Equal(t, "California", cfg.Subject.State)
			assert.Equal(t, "localhost", cfg.Domain)
		})
	}
}

func TestDefaultsFileMissing(t *testing.T) {
	t.Setenv(config.EnvConfigFile, filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cfg := config.Defaults()

	assert.Equal(t, "p12pass", cfg.P12Password, "missing defaults file must not alter built-ins")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr error
	}{
		{
			name:    "Valid Config",
			mutate:  func(cfg *config.Config) {},
			wantErr: nil,
		},
		{
			name:    "Empty Domain",
			mutate:  func(cfg *config.Config) { cfg.Domain = "" },
			wantErr: config.ErrEmptyDomain,
		},
		{
			name:    "Zero Valid Days",
			mutate:  func(cfg *config.Config) { cfg.ValidDays = 0 },
			wantErr: config.ErrInvalidValidDays,
		},
		{
			name:    "Negative Valid Days",
			mutate:  func(cfg *config.Config) { cfg.ValidDays = -5 },
			wantErr: config.ErrInvalidValidDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEnsureOutputDir(t *testing.T) {
	cfg := config.Defaults()
	cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "local-certs")

	require.NoError(t, cfg.EnsureOutputDir())

	info, err := os.Stat(cfg.OutputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on re-run.
	assert.NoError(t, cfg.EnsureOutputDir())
}
