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
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-oqs/pkg/oqs"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintMechanisms prints one family's supported and enabled mechanism lists
func (p *Printer) PrintMechanisms(family string, supported, enabled []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"family":    family,
			"supported": supported,
			"enabled":   enabled,
		})
	case OutputFormatText:
		enabledSet := make(map[string]bool, len(enabled))
		for _, name := range enabled {
			enabledSet[name] = true
		}
		fmt.Fprintf(p.writer, "%s mechanisms (%d supported, %d enabled):\n",
			family, len(supported), len(enabled))
		for _, name := range supported {
			marker := " "
			if enabledSet[name] {
				marker = "*"
			}
			fmt.Fprintf(p.writer, "  %s %s\n", marker, name)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintKEMDetails prints a KEM mechanism description
func (p *Printer) PrintKEMDetails(details oqs.KeyEncapsulationDetails) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"name":                 details.Name,
			"version":              details.Version,
			"claimed_nist_level":   details.ClaimedNISTLevel,
			"ind_cca":              details.IsINDCCA,
			"length_public_key":    details.LengthPublicKey,
			"length_secret_key":    details.LengthSecretKey,
			"length_ciphertext":    details.LengthCiphertext,
			"length_shared_secret": details.LengthSharedSecret,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Mechanism: %s (version %s)\n", details.Name, details.Version)
		fmt.Fprintf(p.writer, "  Claimed NIST level: %d\n", details.ClaimedNISTLevel)
		fmt.Fprintf(p.writer, "  IND-CCA:            %t\n", details.IsINDCCA)
		fmt.Fprintf(p.writer, "  Public key:         %d bytes\n", details.LengthPublicKey)
		fmt.Fprintf(p.writer, "  Secret key:         %d bytes\n", details.LengthSecretKey)
		fmt.Fprintf(p.writer, "  Ciphertext:         %d bytes\n", details.LengthCiphertext)
		fmt.Fprintf(p.writer, "  Shared secret:      %d bytes\n", details.LengthSharedSecret)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSignatureDetails prints a signature mechanism description
func (p *Printer) PrintSignatureDetails(details oqs.SignatureDetails) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"name":               details.Name,
			"version":            details.Version,
			"claimed_nist_level": details.ClaimedNISTLevel,
			"euf_cma":            details.IsEUFCMA,
			"length_public_key":  details.LengthPublicKey,
			"length_secret_key":  details.LengthSecretKey,
			"length_signature":   details.LengthSignature,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Mechanism: %s (version %s)\n", details.Name, details.Version)
		fmt.Fprintf(p.writer, "  Claimed NIST level: %d\n", details.ClaimedNISTLevel)
		fmt.Fprintf(p.writer, "  EUF-CMA:            %t\n", details.IsEUFCMA)
		fmt.Fprintf(p.writer, "  Public key:         %d bytes\n", details.LengthPublicKey)
		fmt.Fprintf(p.writer, "  Secret key:         %d bytes\n", details.LengthSecretKey)
		fmt.Fprintf(p.writer, "  Signature:          %d bytes (max)\n", details.LengthSignature)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintResult prints a simple key/value result map
func (p *Printer) PrintResult(result map[string]interface{}) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		for key, value := range result {
			fmt.Fprintf(p.writer, "%s: %v\n", key, value)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"error": err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

// printJSON marshals v with indentation
func (p *Printer) printJSON(v interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
