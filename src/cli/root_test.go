// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/local-certs/src/cli"
	"github.com/H0llyW00dzZ/local-certs/src/config"
	"github.com/H0llyW00dzZ/local-certs/src/logger"
)

const version = "1.3.3.7-testing"

func setArgs(t *testing.T, args ...string) {
	t.Helper()

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = append([]string{"local-certs"}, args...)
}

func testLogger() logger.Logger {
	log := logger.NewCLILogger()
	log.SetOutput(io.Discard)
	return log
}

func TestExecute_GeneratesArtifacts(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "certs")
	setArgs(t, "-d", "example.test", "-o", outputDir, "--valid-days", "30")

	err := cli.Execute(context.Background(), version, testLogger())
	require.NoError(t, err)

	assert.True(t, cli.OperationPerformed, "operation should have been performed")
	assert.True(t, cli.OperationPerformedSuccessfully, "operation should have succeeded")

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 6, "expected exactly six persistent files")

	for _, name := range []string{"rootCA.key", "rootCA.pem", "example.test.key", "example.test.crt", "example.test.pem", "example.test.p12"} {
		_, err := os.Stat(filepath.Join(outputDir, name))
		assert.NoError(t, err, "missing artifact %s", name)
	}
}

func TestExecute_UnknownFlag(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "certs")
	setArgs(t, "--bogus", "-o", outputDir)

	err := cli.Execute(context.Background(), version, testLogger())
	assert.Error(t, err, "expected error for unknown flag")
	assert.False(t, cli.OperationPerformed, "flag errors must abort before any operation")

	_, statErr := os.Stat(outputDir)
	assert.True(t, os.IsNotExist(statErr), "unknown flag must not create files")
}

func TestExecute_MissingFlagOperand(t *testing.T) {
	setArgs(t, "--domain")

	err := cli.Execute(context.Background(), version, testLogger())
	assert.Error(t, err, "expected error for flag without operand")
	assert.False(t, cli.OperationPerformed)
}

func TestExecute_InvalidValidDays(t *testing.T) {
	setArgs(t, "-o", filepath.Join(t.TempDir(), "certs"), "--valid-days", "0")

	err := cli.Execute(context.Background(), version, testLogger())
	assert.ErrorIs(t, err, config.ErrInvalidValidDays)
}

func TestExecute_EmptyDomain(t *testing.T) {
	setArgs(t, "-o", filepath.Join(t.TempDir(), "certs"), "--domain", "")

	err := cli.Execute(context.Background(), version, testLogger())
	assert.ErrorIs(t, err, config.ErrEmptyDomain)
}

func TestExecute_InstallAndUninstallConflict(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "certs")
	setArgs(t, "-i", "-u", "-o", outputDir)

	err := cli.Execute(context.Background(), version, testLogger())
	assert.Error(t, err, "combining --install with --uninstall must be rejected")
	assert.False(t, cli.OperationPerformed, "conflicting flags must abort before any operation")

	_, statErr := os.Stat(outputDir)
	assert.True(t, os.IsNotExist(statErr), "conflicting flags must not create files")
}

func TestExecute_Help(t *testing.T) {
	setArgs(t, "--help")

	err := cli.Execute(context.Background(), version, testLogger())
	assert.NoError(t, err, "help must exit successfully")
	assert.False(t, cli.OperationPerformed, "help must not perform the operation")
}

func TestExecute_CancelledContext(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "certs")
	setArgs(t, "-o", outputDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cli.Execute(ctx, version, testLogger())
	assert.Error(t, err, "expected cancellation to abort the pipeline")
}
