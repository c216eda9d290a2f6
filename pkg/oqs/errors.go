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

package oqs

import (
	"errors"
	"fmt"
)

// Mechanism family identifiers, matching the liboqs API prefixes.
const (
	FamilyKEM = "KEM"
	FamilySig = "SIG"
)

var (
	// ErrLibraryNotFound indicates no liboqs shared library candidate existed
	ErrLibraryNotFound = errors.New("oqs: liboqs shared library not found")

	// ErrNoSecretKey indicates an operation requires a secret key but none
	// has been generated or supplied
	ErrNoSecretKey = errors.New("oqs: no secret key has been generated or supplied")

	// ErrContextReleased indicates the native context has already been released
	ErrContextReleased = errors.New("oqs: native context has been released")
)

// LibraryLoadError indicates a liboqs candidate was located on disk but the
// dynamic loader failed to load it, or the loaded library is missing the
// expected liboqs symbols.
type LibraryLoadError struct {
	Path string
	Err  error
}

func (e *LibraryLoadError) Error() string {
	return fmt.Sprintf("oqs: failed to load %s: %v", e.Path, e.Err)
}

func (e *LibraryLoadError) Unwrap() error {
	return e.Err
}

// MechanismNotSupportedError indicates the requested algorithm is unknown to
// this liboqs build's registry for the given family.
type MechanismNotSupportedError struct {
	Family  string
	AlgName string
}

func (e *MechanismNotSupportedError) Error() string {
	return fmt.Sprintf("oqs: %s mechanism %s is not supported", e.Family, e.AlgName)
}

// MechanismNotEnabledError indicates the requested algorithm is known to
// liboqs but was excluded from this build (e.g. disabled at compile time).
type MechanismNotEnabledError struct {
	Family  string
	AlgName string
}

func (e *MechanismNotEnabledError) Error() string {
	return fmt.Sprintf("oqs: %s mechanism %s is supported but not enabled in this build", e.Family, e.AlgName)
}

// OperationFailedError indicates a native liboqs routine returned a non-zero
// status. Status carries the raw native return value.
type OperationFailedError struct {
	Op     string
	Status int
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("oqs: %s failed with status %d", e.Op, e.Status)
}
