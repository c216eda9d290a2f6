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

// Package oqs binds the liboqs shared library at runtime, without cgo, and
// exposes its post-quantum key encapsulation (KEM) and digital signature
// (SIG) mechanisms.
//
// The library is discovered through LIBOQS_INSTALL_PATH, the operating
// system's standard dynamic-library search, and the current directory, in
// that order. Init loads it once per process and enumerates each family's
// supported mechanisms along with the subset actually enabled in the build.
//
// KeyEncapsulation and Signature instances own one native context each and
// must be released with Close (or constructed through WithKEM/WithSig, which
// release on every exit path). A single instance is not safe for concurrent
// use; the Environment and its mechanism lists are.
package oqs

import (
	"os"
	"runtime"
	"slices"
	"sync"
)

// Environment is the process-wide view of a loaded liboqs library: the
// native handle, its bound functions, and the supported/enabled mechanism
// lists for both families. It is immutable after Init and safe for
// concurrent readers.
type Environment struct {
	handle uintptr
	path   string
	fn     *libFuncs
	kems   mechanisms
	sigs   mechanisms
}

// mechanisms holds one family's capability lists in the native enumeration
// order. enabled is always a subset of supported.
type mechanisms struct {
	supported    []string
	enabled      []string
	supportedSet map[string]bool
	enabledSet   map[string]bool
}

var (
	initOnce sync.Once
	initEnv  *Environment
	initErr  error
)

// Init loads liboqs and enumerates its mechanisms. It is idempotent: the
// first call does the work and every call returns the same cached
// Environment (or the same error). Nothing else in this package is usable
// until Init succeeds.
func Init() (*Environment, error) {
	initOnce.Do(func() {
		initEnv, initErr = newEnvironment(runtime.GOOS, os.Getenv)
	})
	return initEnv, initErr
}

func newEnvironment(goos string, getenv func(string) string) (*Environment, error) {
	handle, path, err := loadLibrary(candidatePaths(goos, getenv))
	if err != nil {
		return nil, err
	}
	fn, err := bindFuncs(handle)
	if err != nil {
		return nil, &LibraryLoadError{Path: path, Err: err}
	}

	env := &Environment{handle: handle, path: path, fn: fn}
	env.kems = enumerate(fn.kemAlgCount, fn.kemAlgIdentifier, env.probeKEM)
	env.sigs = enumerate(fn.sigAlgCount, fn.sigAlgIdentifier, env.probeSig)
	return env, nil
}

// enumerate builds one family's capability lists. Every identifier the
// native registry knows about is supported; the enabled subset is determined
// by probing each one. A probe failure marks the mechanism as not enabled
// and is never an error: build-time exclusion is an expected state.
func enumerate(count func() int32, identifier func(int32) string, probe func(string) bool) mechanisms {
	m := mechanisms{
		supportedSet: make(map[string]bool),
		enabledSet:   make(map[string]bool),
	}
	n := count()
	for i := int32(0); i < n; i++ {
		name := identifier(i)
		m.supported = append(m.supported, name)
		m.supportedSet[name] = true
	}
	for _, name := range m.supported {
		if probe(name) {
			m.enabled = append(m.enabled, name)
			m.enabledSet[name] = true
		}
	}
	return m
}

// probeKEM checks whether a KEM mechanism is instantiable in this build.
// The probe context must not leak.
func (e *Environment) probeKEM(name string) bool {
	ctx := e.fn.kemNew(name)
	if ctx == 0 {
		return false
	}
	e.fn.kemFree(ctx)
	return true
}

// probeSig checks whether a signature mechanism is instantiable in this build.
func (e *Environment) probeSig(name string) bool {
	ctx := e.fn.sigNew(name)
	if ctx == 0 {
		return false
	}
	e.fn.sigFree(ctx)
	return true
}

// LibraryPath returns the candidate path or name the library was loaded from.
func (e *Environment) LibraryPath() string {
	return e.path
}

// Version returns the native liboqs version string, or "" when the build
// does not export OQS_version.
func (e *Environment) Version() string {
	if e.fn.version == nil {
		return ""
	}
	return e.fn.version()
}

// SupportedKEMs returns every KEM mechanism known to this liboqs build, in
// the native enumeration order.
func (e *Environment) SupportedKEMs() []string {
	return slices.Clone(e.kems.supported)
}

// EnabledKEMs returns the KEM mechanisms actually usable in this build.
func (e *Environment) EnabledKEMs() []string {
	return slices.Clone(e.kems.enabled)
}

// SupportedSigs returns every signature mechanism known to this liboqs
// build, in the native enumeration order.
func (e *Environment) SupportedSigs() []string {
	return slices.Clone(e.sigs.supported)
}

// EnabledSigs returns the signature mechanisms actually usable in this build.
func (e *Environment) EnabledSigs() []string {
	return slices.Clone(e.sigs.enabled)
}

// IsKEMEnabled reports whether the named KEM mechanism is enabled.
func (e *Environment) IsKEMEnabled(algName string) bool {
	return e.kems.enabledSet[algName]
}

// IsSigEnabled reports whether the named signature mechanism is enabled.
func (e *Environment) IsSigEnabled(algName string) bool {
	return e.sigs.enabledSet[algName]
}
