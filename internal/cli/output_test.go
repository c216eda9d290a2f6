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
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-oqs/pkg/oqs"
)

func TestPrintMechanismsText(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("text", &buf)

	err := printer.PrintMechanisms(oqs.FamilyKEM,
		[]string{"ML-KEM-512", "ML-KEM-768", "NTRU-Disabled"},
		[]string{"ML-KEM-512", "ML-KEM-768"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "KEM mechanisms (3 supported, 2 enabled):")
	assert.Contains(t, out, "* ML-KEM-768")
	assert.Contains(t, out, "  NTRU-Disabled")
	assert.NotContains(t, out, "* NTRU-Disabled")
}

func TestPrintMechanismsJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("json", &buf)

	err := printer.PrintMechanisms(oqs.FamilySig,
		[]string{"ML-DSA-44"}, []string{"ML-DSA-44"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "SIG", decoded["family"])
	assert.Equal(t, []interface{}{"ML-DSA-44"}, decoded["supported"])
	assert.Equal(t, []interface{}{"ML-DSA-44"}, decoded["enabled"])
}

func TestPrintKEMDetailsText(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("text", &buf)

	err := printer.PrintKEMDetails(oqs.KeyEncapsulationDetails{
		Name:               "ML-KEM-768",
		Version:            "FIPS203",
		ClaimedNISTLevel:   3,
		IsINDCCA:           true,
		LengthPublicKey:    1184,
		LengthSecretKey:    2400,
		LengthCiphertext:   1088,
		LengthSharedSecret: 32,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Mechanism: ML-KEM-768 (version FIPS203)")
	assert.Contains(t, out, "Claimed NIST level: 3")
	assert.Contains(t, out, "Public key:         1184 bytes")
}

func TestPrintSignatureDetailsJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("json", &buf)

	err := printer.PrintSignatureDetails(oqs.SignatureDetails{
		Name:             "ML-DSA-44",
		ClaimedNISTLevel: 2,
		IsEUFCMA:         true,
		LengthSignature:  2420,
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ML-DSA-44", decoded["name"])
	assert.Equal(t, true, decoded["euf_cma"])
	assert.Equal(t, float64(2420), decoded["length_signature"])
}

func TestPrintErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter("json", &buf)

	require.NoError(t, printer.PrintError(errors.New("boom")))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "boom", decoded["error"])
}

func TestUnknownOutputFormat(t *testing.T) {
	printer := NewPrinter("yaml", &bytes.Buffer{})
	assert.Error(t, printer.PrintMechanisms("KEM", nil, nil))
	assert.Error(t, printer.PrintKEMDetails(oqs.KeyEncapsulationDetails{}))
	assert.Error(t, printer.PrintSignatureDetails(oqs.SignatureDetails{}))
	assert.Error(t, printer.PrintResult(nil))
}
