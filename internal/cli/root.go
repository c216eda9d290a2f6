// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-oqs.
//
// go-oqs is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package cli implements the oqs command line interface on top of the
// pkg/oqs binding.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-oqs/pkg/logging"
	"github.com/jeremyhahn/go-oqs/pkg/oqs"
)

var (
	libPath      string
	outputFormat string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "oqs",
	Short: "go-oqs CLI - Post-quantum KEM and signature mechanisms via liboqs",
	Long: `go-oqs CLI exposes the post-quantum key encapsulation and digital
signature mechanisms of a liboqs shared library discovered at runtime.

The library is located through, in order:
  - LIBOQS_INSTALL_PATH (or the --lib flag)
  - the operating system's standard dynamic-library search
  - the current working directory`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&libPath, "lib", "",
		"explicit path to the liboqs shared library (overrides "+oqs.InstallPathEnv+")")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(algsCmd)
	rootCmd.AddCommand(kemCmd)
	rootCmd.AddCommand(sigCmd)
}

// environment loads liboqs, honoring the --lib override. A load failure is
// fatal: nothing the CLI does can proceed without the native library, and
// the two failure modes are reported distinctly.
func environment() *oqs.Environment {
	logger := logging.NewLogger(verbose)
	if libPath != "" {
		if err := os.Setenv(oqs.InstallPathEnv, libPath); err != nil {
			logger.Fatalf("failed to set %s: %v", oqs.InstallPathEnv, err)
		}
	}

	env, err := oqs.Init()
	if err != nil {
		if errors.Is(err, oqs.ErrLibraryNotFound) {
			logger.Fatalf("no liboqs shared library found (set %s or pass --lib)", oqs.InstallPathEnv)
		}
		logger.Fatalf("liboqs found but failed to load: %v", err)
	}

	logger.Debugf("loaded liboqs %s from %s", env.Version(), env.LibraryPath())
	return env
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(outputFormat, os.Stderr)
	_ = printer.PrintError(err)
	os.Exit(1)
}
