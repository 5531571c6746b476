// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/local-certs/src/config"
	"github.com/H0llyW00dzZ/local-certs/src/internal/certgen"
	"github.com/H0llyW00dzZ/local-certs/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/local-certs/src/internal/truststore"
	"github.com/H0llyW00dzZ/local-certs/src/logger"
)

var (
	domain      string
	outputDir   string
	validDays   int
	installCA   bool
	uninstallCA bool
	p12Password string
	country     string
	state       string
	locality    string
	org         string
	orgUnit     string
	email       string
	jsonLog     bool
)

// OperationPerformed reports whether the command ran past flag parsing.
var OperationPerformed bool

// OperationPerformedSuccessfully reports whether the command completed
// without error.
var OperationPerformedSuccessfully bool

// Execute runs the root command. Unknown flags and flags missing their
// operand print the error plus the help text and yield a non-zero exit
// without touching the filesystem.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	defaults := config.Defaults()

	rootCmd := &cobra.Command{
		Use:     posix.GetExecutableName(),
		Short:   "Local development CA and certificate generator",
		Long: `Creates a self-signed development certificate authority and a leaf
certificate for a domain, bundles them as a combined PEM and a
password-protected PKCS#12 archive, and optionally installs or removes
the CA in the operating system trust store.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonLog {
				log = logger.NewJSONLogger(os.Stdout)
			}

			cfg := config.Config{
				Domain:    domain,
				ValidDays: validDays,
				OutputDir: outputDir,
				Subject: config.Subject{
					Country:            country,
					State:              state,
					Locality:           locality,
					Organization:       org,
					OrganizationalUnit: orgUnit,
					Email:              email,
				},
				P12Password: p12Password,
				Install:     installCA,
				Uninstall:   uninstallCA,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, log)
		},
	}

	rootCmd.Flags().StringVarP(&domain, "domain", "d", defaults.Domain, "domain the leaf certificate is issued for")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", defaults.OutputDir, "directory for generated artifacts")
	rootCmd.Flags().IntVarP(&validDays, "valid-days", "v", defaults.ValidDays, "validity period in days for CA and leaf certificate")
	rootCmd.Flags().BoolVarP(&installCA, "install", "i", false, "install the CA into the system trust store")
	rootCmd.Flags().BoolVarP(&uninstallCA, "uninstall", "u", false, "remove the CA from the system trust store")
	rootCmd.Flags().StringVarP(&p12Password, "password", "p", defaults.P12Password, "password protecting the PKCS#12 archive")
	rootCmd.Flags().StringVar(&country, "country", defaults.Subject.Country, "X.509 subject country")
	rootCmd.Flags().StringVar(&state, "state", defaults.Subject.State, "X.509 subject state or province")
	rootCmd.Flags().StringVar(&locality, "locality", defaults.Subject.Locality, "X.509 subject locality")
	rootCmd.Flags().StringVar(&org, "org", defaults.Subject.Organization, "X.509 subject organization")
	rootCmd.Flags().StringVar(&orgUnit, "org-unit", defaults.Subject.OrganizationalUnit, "X.509 subject organizational unit")
	rootCmd.Flags().StringVar(&email, "email", defaults.Subject.Email, "X.509 subject email address")
	rootCmd.Flags().BoolVar(&jsonLog, "log-json", false, "emit structured JSON log lines")

	rootCmd.MarkFlagsMutuallyExclusive("install", "uninstall")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", err, cmd.UsageString())
		return err
	})

	return rootCmd.ExecuteContext(ctx)
}

// run executes the configured operation: trust-store removal only for
// --uninstall, otherwise the certificate pipeline followed by an optional
// trust-store install.
func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	OperationPerformed = true

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	store := truststore.NewStore(truststore.Classify(), log)

	if cfg.Uninstall {
		if err := store.Uninstall(ctx); err != nil {
			return err
		}
		OperationPerformedSuccessfully = true
		return nil
	}

	gen := certgen.New(cfg, log)
	result, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("Certificates for %s written to %s", cfg.Domain, cfg.OutputDir)
	log.Println(result.RenderTable())

	if cfg.Install {
		if err := store.Install(ctx, result.Artifacts.CACert()); err != nil {
			return err
		}
	}

	OperationPerformedSuccessfully = true
	return nil
}
