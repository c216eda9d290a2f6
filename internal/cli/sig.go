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

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-oqs/pkg/oqs"
)

var (
	sigPublicKeyFile string
	sigSecretKeyFile string
	sigInputFile     string
	sigSignatureFile string
)

// sigCmd groups digital signature operations
var sigCmd = &cobra.Command{
	Use:   "sig",
	Short: "Digital signature operations",
}

// sigInfoCmd prints a signature mechanism description
var sigInfoCmd = &cobra.Command{
	Use:   "info <algorithm>",
	Short: "Print a signature mechanism description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()
		err := env.WithSig(args[0], func(sig *oqs.Signature) error {
			return NewPrinter(outputFormat, os.Stdout).PrintSignatureDetails(sig.Details())
		})
		if err != nil {
			handleError(err)
		}
	},
}

// sigKeygenCmd generates a keypair and writes it to disk
var sigKeygenCmd = &cobra.Command{
	Use:   "keygen <algorithm>",
	Short: "Generate a signature keypair",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()
		err := env.WithSig(args[0], func(sig *oqs.Signature) error {
			publicKey, err := sig.GenerateKeyPair()
			if err != nil {
				return err
			}
			secretKey, err := sig.ExportSecretKey()
			if err != nil {
				return err
			}
			if err := os.WriteFile(sigPublicKeyFile, publicKey, 0o644); err != nil {
				return fmt.Errorf("failed to write public key: %w", err)
			}
			// Secret key material is only readable by the owner
			if err := os.WriteFile(sigSecretKeyFile, secretKey, 0o600); err != nil {
				return fmt.Errorf("failed to write secret key: %w", err)
			}
			return NewPrinter(outputFormat, os.Stdout).PrintResult(map[string]interface{}{
				"algorithm":  sig.Details().Name,
				"public_key": sigPublicKeyFile,
				"secret_key": sigSecretKeyFile,
			})
		})
		if err != nil {
			handleError(err)
		}
	},
}

// sigSignCmd signs a file with a stored secret key
var sigSignCmd = &cobra.Command{
	Use:   "sign <algorithm>",
	Short: "Sign a file with a stored secret key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()

		message, err := os.ReadFile(sigInputFile)
		if err != nil {
			handleError(fmt.Errorf("failed to read input: %w", err))
		}
		secretKey, err := os.ReadFile(sigSecretKeyFile)
		if err != nil {
			handleError(fmt.Errorf("failed to read secret key: %w", err))
		}

		signer, err := env.NewSig(args[0], secretKey)
		if err != nil {
			handleError(err)
		}
		defer func() { _ = signer.Close() }()

		signature, err := signer.Sign(message)
		if err != nil {
			handleError(err)
		}
		if err := os.WriteFile(sigSignatureFile, signature, 0o644); err != nil {
			handleError(fmt.Errorf("failed to write signature: %w", err))
		}

		err = NewPrinter(outputFormat, os.Stdout).PrintResult(map[string]interface{}{
			"algorithm": signer.Details().Name,
			"input":     sigInputFile,
			"signature": sigSignatureFile,
			"bytes":     len(signature),
		})
		if err != nil {
			handleError(err)
		}
	},
}

// sigVerifyCmd verifies a detached signature; exits 1 when invalid
var sigVerifyCmd = &cobra.Command{
	Use:   "verify <algorithm>",
	Short: "Verify a detached signature",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()

		message, err := os.ReadFile(sigInputFile)
		if err != nil {
			handleError(fmt.Errorf("failed to read input: %w", err))
		}
		signature, err := os.ReadFile(sigSignatureFile)
		if err != nil {
			handleError(fmt.Errorf("failed to read signature: %w", err))
		}
		publicKey, err := os.ReadFile(sigPublicKeyFile)
		if err != nil {
			handleError(fmt.Errorf("failed to read public key: %w", err))
		}

		var valid bool
		err = env.WithSig(args[0], func(sig *oqs.Signature) error {
			valid, err = sig.Verify(message, signature, publicKey)
			return err
		})
		if err != nil {
			handleError(err)
		}

		printErr := NewPrinter(outputFormat, os.Stdout).PrintResult(map[string]interface{}{
			"algorithm": args[0],
			"input":     sigInputFile,
			"valid":     valid,
		})
		if printErr != nil {
			handleError(printErr)
		}
		if !valid {
			os.Exit(1)
		}
	},
}

func init() {
	sigKeygenCmd.Flags().StringVar(&sigPublicKeyFile, "pub", "sig.pub", "public key output file")
	sigKeygenCmd.Flags().StringVar(&sigSecretKeyFile, "key", "sig.key", "secret key output file")

	sigSignCmd.Flags().StringVar(&sigSecretKeyFile, "key", "sig.key", "secret key file")
	sigSignCmd.Flags().StringVar(&sigInputFile, "in", "", "file to sign")
	sigSignCmd.Flags().StringVar(&sigSignatureFile, "sig", "message.sig", "signature output file")
	_ = sigSignCmd.MarkFlagRequired("in")

	sigVerifyCmd.Flags().StringVar(&sigPublicKeyFile, "pub", "sig.pub", "public key file")
	sigVerifyCmd.Flags().StringVar(&sigInputFile, "in", "", "signed file")
	sigVerifyCmd.Flags().StringVar(&sigSignatureFile, "sig", "message.sig", "signature file")
	_ = sigVerifyCmd.MarkFlagRequired("in")

	sigCmd.AddCommand(sigInfoCmd)
	sigCmd.AddCommand(sigKeygenCmd)
	sigCmd.AddCommand(sigSignCmd)
	sigCmd.AddCommand(sigVerifyCmd)
}
