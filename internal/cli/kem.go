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
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-oqs/pkg/oqs"
)

var (
	kemPublicKeyFile string
	kemSecretKeyFile string
)

// kemCmd groups key encapsulation operations
var kemCmd = &cobra.Command{
	Use:   "kem",
	Short: "Key encapsulation operations",
}

// kemInfoCmd prints a KEM mechanism description
var kemInfoCmd = &cobra.Command{
	Use:   "info <algorithm>",
	Short: "Print a KEM mechanism description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()
		err := env.WithKEM(args[0], func(kem *oqs.KeyEncapsulation) error {
			return NewPrinter(outputFormat, os.Stdout).PrintKEMDetails(kem.Details())
		})
		if err != nil {
			handleError(err)
		}
	},
}

// kemKeygenCmd generates a keypair and writes it to disk
var kemKeygenCmd = &cobra.Command{
	Use:   "keygen <algorithm>",
	Short: "Generate a KEM keypair",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()
		err := env.WithKEM(args[0], func(kem *oqs.KeyEncapsulation) error {
			publicKey, err := kem.GenerateKeyPair()
			if err != nil {
				return err
			}
			secretKey, err := kem.ExportSecretKey()
			if err != nil {
				return err
			}
			if err := os.WriteFile(kemPublicKeyFile, publicKey, 0o644); err != nil {
				return fmt.Errorf("failed to write public key: %w", err)
			}
			// Secret key material is only readable by the owner
			if err := os.WriteFile(kemSecretKeyFile, secretKey, 0o600); err != nil {
				return fmt.Errorf("failed to write secret key: %w", err)
			}
			return NewPrinter(outputFormat, os.Stdout).PrintResult(map[string]interface{}{
				"algorithm":  kem.Details().Name,
				"public_key": kemPublicKeyFile,
				"secret_key": kemSecretKeyFile,
			})
		})
		if err != nil {
			handleError(err)
		}
	},
}

// kemRoundtripCmd exercises a full encapsulate/decapsulate exchange
var kemRoundtripCmd = &cobra.Command{
	Use:   "roundtrip <algorithm>",
	Short: "Run an in-process encapsulate/decapsulate exchange",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()
		err := env.WithKEM(args[0], func(alice *oqs.KeyEncapsulation) error {
			publicKey, err := alice.GenerateKeyPair()
			if err != nil {
				return err
			}

			return env.WithKEM(args[0], func(bob *oqs.KeyEncapsulation) error {
				ciphertext, bobSecret, err := bob.Encapsulate(publicKey)
				if err != nil {
					return err
				}
				aliceSecret, err := alice.Decapsulate(ciphertext)
				if err != nil {
					return err
				}
				if !bytes.Equal(bobSecret, aliceSecret) {
					return fmt.Errorf("shared secrets do not match for %s", alice.Details().Name)
				}
				return NewPrinter(outputFormat, os.Stdout).PrintResult(map[string]interface{}{
					"algorithm":     alice.Details().Name,
					"ciphertext":    len(ciphertext),
					"shared_secret": len(bobSecret),
					"match":         true,
				})
			})
		})
		if err != nil {
			handleError(err)
		}
	},
}

func init() {
	kemKeygenCmd.Flags().StringVar(&kemPublicKeyFile, "pub", "kem.pub", "public key output file")
	kemKeygenCmd.Flags().StringVar(&kemSecretKeyFile, "key", "kem.key", "secret key output file")

	kemCmd.AddCommand(kemInfoCmd)
	kemCmd.AddCommand(kemKeygenCmd)
	kemCmd.AddCommand(kemRoundtripCmd)
}
