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
	"bytes"
	"unsafe"
)

// SignatureDetails describes a signature mechanism as reported by its live
// native context.
type SignatureDetails struct {
	Name             string
	Version          string
	ClaimedNISTLevel int
	IsEUFCMA         bool
	LengthPublicKey  int
	LengthSecretKey  int
	LengthSignature  int
}

// Signature owns one native OQS_SIG context and the secret key established
// on it. Same lifecycle contract as KeyEncapsulation.
type Signature struct {
	env       *Environment
	ctx       uintptr
	details   SignatureDetails
	secretKey []byte
	released  bool
}

// NewSig obtains a native context for an enabled signature mechanism,
// with the same validation and secret-key semantics as NewKEM.
func (e *Environment) NewSig(algName string, secretKey []byte) (*Signature, error) {
	if !e.sigs.enabledSet[algName] {
		if e.sigs.supportedSet[algName] {
			return nil, &MechanismNotEnabledError{Family: FamilySig, AlgName: algName}
		}
		return nil, &MechanismNotSupportedError{Family: FamilySig, AlgName: algName}
	}

	ctx := e.fn.sigNew(algName)
	if ctx == 0 {
		return nil, &OperationFailedError{Op: "OQS_SIG_new", Status: -1}
	}

	native := (*sigContext)(unsafe.Pointer(ctx))
	sig := &Signature{
		env: e,
		ctx: ctx,
		details: SignatureDetails{
			Name:             goString(native.methodName),
			Version:          goString(native.algVersion),
			ClaimedNISTLevel: int(native.claimedNISTLevel),
			IsEUFCMA:         native.eufCMA != 0,
			LengthPublicKey:  int(native.lengthPublicKey),
			LengthSecretKey:  int(native.lengthSecretKey),
			LengthSignature:  int(native.lengthSignature),
		},
	}
	if secretKey != nil {
		sig.secretKey = fixedBuffer(secretKey, sig.details.LengthSecretKey)
	}
	return sig, nil
}

// WithSig runs fn with a freshly constructed Signature and releases the
// native context on every exit path.
func (e *Environment) WithSig(algName string, fn func(*Signature) error) error {
	sig, err := e.NewSig(algName, nil)
	if err != nil {
		return err
	}
	defer func() { _ = sig.Close() }()
	return fn(sig)
}

// Details returns the mechanism description read at construction.
func (s *Signature) Details() SignatureDetails {
	return s.details
}

// GenerateKeyPair generates a new keypair and returns the public key. The
// secret key is retained internally, replacing any previously held key.
func (s *Signature) GenerateKeyPair() ([]byte, error) {
	if s.released {
		return nil, ErrContextReleased
	}
	publicKey := make([]byte, s.details.LengthPublicKey)
	secretKey := make([]byte, s.details.LengthSecretKey)
	if status := s.env.fn.sigKeypair(s.ctx, bufPtr(publicKey), bufPtr(secretKey)); status != statusOK {
		return nil, &OperationFailedError{Op: "OQS_SIG_keypair", Status: int(status)}
	}
	zeroize(s.secretKey)
	s.secretKey = secretKey
	return publicKey, nil
}

// ExportSecretKey returns a copy of the held secret key. It fails with
// ErrNoSecretKey when no key has been generated or supplied.
func (s *Signature) ExportSecretKey() ([]byte, error) {
	if s.released {
		return nil, ErrContextReleased
	}
	if s.secretKey == nil {
		return nil, ErrNoSecretKey
	}
	return bytes.Clone(s.secretKey), nil
}

// Sign signs message with the held secret key and returns the signature,
// truncated to the length the mechanism actually produced. The message is
// passed with its exact byte length, so binary content with embedded zero
// bytes signs correctly. Fails with ErrNoSecretKey when no key is held.
func (s *Signature) Sign(message []byte) ([]byte, error) {
	if s.released {
		return nil, ErrContextReleased
	}
	if s.secretKey == nil {
		return nil, ErrNoSecretKey
	}
	signature := make([]byte, s.details.LengthSignature)
	var sigLen uintptr
	status := s.env.fn.sigSign(s.ctx, bufPtr(signature), &sigLen,
		bufPtr(message), uintptr(len(message)), bufPtr(s.secretKey))
	if status != statusOK {
		return nil, &OperationFailedError{Op: "OQS_SIG_sign", Status: int(status)}
	}
	return signature[:sigLen], nil
}

// Verify reports whether signature is valid for message under publicKey.
// Malformed or wrong-length signatures and keys yield false, never an
// error; the only error condition is a released context.
func (s *Signature) Verify(message, signature, publicKey []byte) (bool, error) {
	if s.released {
		return false, ErrContextReleased
	}
	pk := fixedBuffer(publicKey, s.details.LengthPublicKey)
	status := s.env.fn.sigVerify(s.ctx, bufPtr(message), uintptr(len(message)),
		bufPtr(signature), uintptr(len(signature)), bufPtr(pk))
	return status == statusOK, nil
}

// Close releases the native context and wipes the held secret key. The
// first call frees the context; subsequent calls are no-ops.
func (s *Signature) Close() error {
	if s.released {
		return nil
	}
	s.released = true
	zeroize(s.secretKey)
	s.secretKey = nil
	s.env.fn.sigFree(s.ctx)
	s.ctx = 0
	return nil
}
