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

// KeyEncapsulationDetails describes a KEM mechanism as reported by its live
// native context. The lengths are authoritative for all buffer sizing; they
// vary per algorithm and are never hard-coded.
type KeyEncapsulationDetails struct {
	Name               string
	Version            string
	ClaimedNISTLevel   int
	IsINDCCA           bool
	LengthPublicKey    int
	LengthSecretKey    int
	LengthCiphertext   int
	LengthSharedSecret int
}

// KeyEncapsulation owns one native OQS_KEM context and the secret key
// established on it. It must be released with Close exactly once; all
// operations fail with ErrContextReleased afterwards. Not safe for
// concurrent use of a single instance.
type KeyEncapsulation struct {
	env       *Environment
	ctx       uintptr
	details   KeyEncapsulationDetails
	secretKey []byte
	released  bool
}

// NewKEM obtains a native context for an enabled KEM mechanism.
//
// A name that is supported but excluded from this build fails with
// *MechanismNotEnabledError; a name unknown to the registry fails with
// *MechanismNotSupportedError.
//
// secretKey optionally seeds the instance with a previously exported key
// for Decapsulate; it is copied into a buffer of exactly the mechanism's
// secret key length.
func (e *Environment) NewKEM(algName string, secretKey []byte) (*KeyEncapsulation, error) {
	if !e.kems.enabledSet[algName] {
		if e.kems.supportedSet[algName] {
			return nil, &MechanismNotEnabledError{Family: FamilyKEM, AlgName: algName}
		}
		return nil, &MechanismNotSupportedError{Family: FamilyKEM, AlgName: algName}
	}

	ctx := e.fn.kemNew(algName)
	if ctx == 0 {
		return nil, &OperationFailedError{Op: "OQS_KEM_new", Status: -1}
	}

	native := (*kemContext)(unsafe.Pointer(ctx))
	kem := &KeyEncapsulation{
		env: e,
		ctx: ctx,
		details: KeyEncapsulationDetails{
			Name:               goString(native.methodName),
			Version:            goString(native.algVersion),
			ClaimedNISTLevel:   int(native.claimedNISTLevel),
			IsINDCCA:           native.indCCA != 0,
			LengthPublicKey:    int(native.lengthPublicKey),
			LengthSecretKey:    int(native.lengthSecretKey),
			LengthCiphertext:   int(native.lengthCiphertext),
			LengthSharedSecret: int(native.lengthSharedSecret),
		},
	}
	if secretKey != nil {
		kem.secretKey = fixedBuffer(secretKey, kem.details.LengthSecretKey)
	}
	return kem, nil
}

// WithKEM runs fn with a freshly constructed KeyEncapsulation and releases
// the native context on every exit path.
func (e *Environment) WithKEM(algName string, fn func(*KeyEncapsulation) error) error {
	kem, err := e.NewKEM(algName, nil)
	if err != nil {
		return err
	}
	defer func() { _ = kem.Close() }()
	return fn(kem)
}

// Details returns the mechanism description read at construction.
func (k *KeyEncapsulation) Details() KeyEncapsulationDetails {
	return k.details
}

// GenerateKeyPair generates a new keypair and returns the public key. The
// secret key is retained internally, replacing any previously held key, and
// can be obtained with ExportSecretKey.
func (k *KeyEncapsulation) GenerateKeyPair() ([]byte, error) {
	if k.released {
		return nil, ErrContextReleased
	}
	publicKey := make([]byte, k.details.LengthPublicKey)
	secretKey := make([]byte, k.details.LengthSecretKey)
	if status := k.env.fn.kemKeypair(k.ctx, bufPtr(publicKey), bufPtr(secretKey)); status != statusOK {
		return nil, &OperationFailedError{Op: "OQS_KEM_keypair", Status: int(status)}
	}
	zeroize(k.secretKey)
	k.secretKey = secretKey
	return publicKey, nil
}

// ExportSecretKey returns a copy of the held secret key. It fails with
// ErrNoSecretKey when no key has been generated or supplied.
func (k *KeyEncapsulation) ExportSecretKey() ([]byte, error) {
	if k.released {
		return nil, ErrContextReleased
	}
	if k.secretKey == nil {
		return nil, ErrNoSecretKey
	}
	return bytes.Clone(k.secretKey), nil
}

// Encapsulate generates a shared secret for the peer's public key and
// returns the ciphertext to transmit along with the local copy of the
// secret. Any non-zero native status fails the whole operation.
func (k *KeyEncapsulation) Encapsulate(peerPublicKey []byte) (ciphertext, sharedSecret []byte, err error) {
	if k.released {
		return nil, nil, ErrContextReleased
	}
	publicKey := fixedBuffer(peerPublicKey, k.details.LengthPublicKey)
	ciphertext = make([]byte, k.details.LengthCiphertext)
	sharedSecret = make([]byte, k.details.LengthSharedSecret)
	if status := k.env.fn.kemEncaps(k.ctx, bufPtr(ciphertext), bufPtr(sharedSecret), bufPtr(publicKey)); status != statusOK {
		return nil, nil, &OperationFailedError{Op: "OQS_KEM_encaps", Status: int(status)}
	}
	return ciphertext, sharedSecret, nil
}

// Decapsulate recovers the shared secret from a peer's ciphertext using the
// held secret key. It fails with ErrNoSecretKey when no key is held.
func (k *KeyEncapsulation) Decapsulate(ciphertext []byte) ([]byte, error) {
	if k.released {
		return nil, ErrContextReleased
	}
	if k.secretKey == nil {
		return nil, ErrNoSecretKey
	}
	ct := fixedBuffer(ciphertext, k.details.LengthCiphertext)
	sharedSecret := make([]byte, k.details.LengthSharedSecret)
	if status := k.env.fn.kemDecaps(k.ctx, bufPtr(sharedSecret), bufPtr(ct), bufPtr(k.secretKey)); status != statusOK {
		return nil, &OperationFailedError{Op: "OQS_KEM_decaps", Status: int(status)}
	}
	return sharedSecret, nil
}

// Close releases the native context and wipes the held secret key. The
// first call frees the context; subsequent calls are no-ops, so a double
// Close never double-frees.
func (k *KeyEncapsulation) Close() error {
	if k.released {
		return nil
	}
	k.released = true
	zeroize(k.secretKey)
	k.secretKey = nil
	k.env.fn.kemFree(k.ctx)
	k.ctx = 0
	return nil
}
