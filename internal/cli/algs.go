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
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-oqs/pkg/oqs"
)

// algsCmd lists the mechanisms the loaded liboqs build knows about.
// Enabled mechanisms are marked with an asterisk in text output.
var algsCmd = &cobra.Command{
	Use:   "algs",
	Short: "List supported and enabled mechanisms",
	Long: `List every KEM and signature mechanism the loaded liboqs build
supports, and which of those are enabled in this build.`,
	Run: func(cmd *cobra.Command, args []string) {
		env := environment()
		printer := NewPrinter(outputFormat, os.Stdout)

		if err := printer.PrintMechanisms(oqs.FamilyKEM, env.SupportedKEMs(), env.EnabledKEMs()); err != nil {
			handleError(err)
		}
		if err := printer.PrintMechanisms(oqs.FamilySig, env.SupportedSigs(), env.EnabledSigs()); err != nil {
			handleError(err)
		}
	},
}
