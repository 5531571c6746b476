// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/H0llyW00dzZ/local-certs/src/internal/x509/pemkit"
	"github.com/H0llyW00dzZ/local-certs/src/logger"
)

// anchorName is the base name of the CA anchor file placed in the system
// trust directory.
const anchorName = "local-certs-rootCA"

// Store installs and uninstalls the development CA in the OS trust store.
// Each platform family implements the two operations; unsupported platforms
// only print manual guidance and succeed as a no-op.
type Store interface {
	// Install copies the CA certificate into the trust anchor location and
	// refreshes the system trust cache.
	Install(ctx context.Context, caCertPath string) error

	// Uninstall removes the CA certificate from the trust anchor location
	// and refreshes the system trust cache. Removing a never-installed CA
	// is a no-op success.
	Uninstall(ctx context.Context) error

	// Platform reports the distribution family the store targets.
	Platform() Platform
}

// NewStore returns the Store implementation for the detected platform.
func NewStore(p Platform, log logger.Logger) Store {
	switch p {
	case PlatformDebian:
		return &systemStore{
			platform: p,
			anchor:   "/usr/local/share/ca-certificates/" + anchorName + ".crt",
			refresh:  []string{"update-ca-certificates"},
			run:      runWithSudo,
			log:      log,
		}
	case PlatformRedHat:
		return &systemStore{
			platform: p,
			anchor:   "/etc/pki/ca-trust/source/anchors/" + anchorName + ".pem",
			refresh:  []string{"update-ca-trust", "extract"},
			run:      runWithSudo,
			log:      log,
		}
	default:
		return &unsupportedStore{log: log}
	}
}

// CmdError reports a failed trust-store command together with its combined
// output, which usually carries the actionable detail (missing privileges,
// missing refresh binary).
type CmdError struct {
	Err    error
	Cmd    string
	Output []byte
}

// Error implements the error interface.
func (e *CmdError) Error() string {
	return fmt.Sprintf("truststore: command %q failed: %v: %s", e.Cmd, e.Err, bytes.TrimSpace(e.Output))
}

// Unwrap returns the underlying command error.
func (e *CmdError) Unwrap() error { return e.Err }

// runnerFunc executes a system command, feeding stdin when non-nil and
// returning the combined output. It exists so tests can intercept the
// privileged trust-store commands.
type runnerFunc func(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)

// runWithSudo executes a command through sudo when available, matching how
// trust anchors are written on systems where the tool runs unprivileged.
func runWithSudo(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	var cmd *exec.Cmd
	if _, err := exec.LookPath("sudo"); err != nil {
		cmd = exec.CommandContext(ctx, name, args...)
	} else {
		cmd = exec.CommandContext(ctx, "sudo", append([]string{"--", name}, args...)...)
	}
	cmd.Stdin = stdin
	return cmd.CombinedOutput()
}

// systemStore implements Store for Linux families with a trust anchor
// directory and a cache refresh command.
type systemStore struct {
	platform Platform
	anchor   string
	refresh  []string
	run      runnerFunc
	log      logger.Logger
}

// Platform reports the distribution family the store targets.
func (s *systemStore) Platform() Platform { return s.platform }

// Install copies the CA certificate to the anchor location and refreshes the
// trust cache.
func (s *systemStore) Install(ctx context.Context, caCertPath string) error {
	data, err := os.ReadFile(caCertPath)
	if err != nil {
		return fmt.Errorf("truststore: failed to read CA certificate: %w", err)
	}

	// Never anchor a file that does not decode to a certificate.
	if _, err := pemkit.New().ParseCert(data); err != nil {
		return fmt.Errorf("truststore: %s is not a valid CA certificate: %w", caCertPath, err)
	}

	s.log.Printf("Installing CA certificate to %s (%s)...", s.anchor, s.platform)
	if out, err := s.run(ctx, bytes.NewReader(data), "tee", s.anchor); err != nil {
		return &CmdError{Err: err, Cmd: "tee " + s.anchor, Output: out}
	}

	if err := s.refreshCache(ctx); err != nil {
		return err
	}

	s.log.Println("CA certificate installed into the system trust store.")
	return nil
}

// Uninstall removes the CA certificate from the anchor location and
// refreshes the trust cache.
func (s *systemStore) Uninstall(ctx context.Context) error {
	s.log.Printf("Removing CA certificate from %s (%s)...", s.anchor, s.platform)
	if out, err := s.run(ctx, nil, "rm", "-f", s.anchor); err != nil {
		return &CmdError{Err: err, Cmd: "rm -f " + s.anchor, Output: out}
	}

	if err := s.refreshCache(ctx); err != nil {
		return err
	}

	s.log.Println("CA certificate removed from the system trust store.")
	return nil
}

func (s *systemStore) refreshCache(ctx context.Context) error {
	if out, err := s.run(ctx, nil, s.refresh[0], s.refresh[1:]...); err != nil {
		return &CmdError{Err: err, Cmd: strings.Join(s.refresh, " "), Output: out}
	}
	return nil
}

// unsupportedStore implements Store for platforms without automatic
// integration. Both operations print manual guidance and succeed.
type unsupportedStore struct{ log logger.Logger }

// Platform reports PlatformUnsupported.
func (u *unsupportedStore) Platform() Platform { return PlatformUnsupported }

// Install prints manual trust instructions.
func (u *unsupportedStore) Install(_ context.Context, caCertPath string) error {
	u.log.Println("Warning: automatic trust store integration is not supported on this platform.")
	u.log.Printf("To trust the CA manually, import %s into your system or browser trust store.", caCertPath)
	return nil
}

// Uninstall prints manual removal instructions.
func (u *unsupportedStore) Uninstall(_ context.Context) error {
	u.log.Println("Warning: automatic trust store integration is not supported on this platform.")
	u.log.Println("If the CA was trusted manually, remove it from your system or browser trust store.")
	return nil
}
