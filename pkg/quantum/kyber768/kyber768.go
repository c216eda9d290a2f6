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

// Package kyber768 provides the Kyber768 quantum-safe key encapsulation
// mechanism (KEM) through the runtime liboqs binding. Kyber is a NIST PQC
// standard for key encapsulation.
package kyber768

import (
	"errors"

	"github.com/jeremyhahn/go-oqs/pkg/oqs"
)

const (
	// AlgorithmName is the OQS algorithm identifier for Kyber768
	// Using ML-KEM-768 which is the NIST FIPS 203 standard name for Kyber768
	AlgorithmName = "ML-KEM-768"
)

var (
	// ErrNotInitialized indicates the KEM has not been initialized
	ErrNotInitialized = errors.New("kyber768: KEM not initialized")
	// ErrInvalidSecretKey indicates an invalid secret key was provided
	ErrInvalidSecretKey = errors.New("kyber768: invalid secret key")
	// ErrEncapsulationFailed indicates encapsulation operation failed
	ErrEncapsulationFailed = errors.New("kyber768: encapsulation failed")
	// ErrDecapsulationFailed indicates decapsulation operation failed
	ErrDecapsulationFailed = errors.New("kyber768: decapsulation failed")
)

// Kyber768 wraps an oqs.KeyEncapsulation fixed to the ML-KEM-768 mechanism
type Kyber768 struct {
	kem *oqs.KeyEncapsulation
}

// New creates a new Kyber768 instance without key material
func New() (*Kyber768, error) {
	env, err := oqs.Init()
	if err != nil {
		return nil, err
	}
	kem, err := env.NewKEM(AlgorithmName, nil)
	if err != nil {
		return nil, err
	}
	return &Kyber768{kem: kem}, nil
}

// Create initializes Kyber768 with an existing secret key
func Create(secretKey []byte) (*Kyber768, error) {
	env, err := oqs.Init()
	if err != nil {
		return nil, err
	}
	if len(secretKey) == 0 {
		return nil, ErrInvalidSecretKey
	}
	kem, err := env.NewKEM(AlgorithmName, secretKey)
	if err != nil {
		return nil, err
	}
	return &Kyber768{kem: kem}, nil
}

// Clean releases the native resources held by the KEM
// This should always be called when done using the instance
func (k *Kyber768) Clean() {
	if k.kem != nil {
		_ = k.kem.Close()
	}
}

// GenerateKeyPair generates a new Kyber768 key pair
// Returns the public key; the secret key is stored internally
func (k *Kyber768) GenerateKeyPair() ([]byte, error) {
	if k.kem == nil {
		return nil, ErrNotInitialized
	}
	return k.kem.GenerateKeyPair()
}

// ExportSecretKey returns the current secret key
func (k *Kyber768) ExportSecretKey() []byte {
	if k.kem == nil {
		return nil
	}
	secretKey, err := k.kem.ExportSecretKey()
	if err != nil {
		return nil
	}
	return secretKey
}

// Encapsulate generates a shared secret and ciphertext using recipient's public key
// Returns (ciphertext, sharedSecret)
func (k *Kyber768) Encapsulate(publicKey []byte) ([]byte, []byte, error) {
	if k.kem == nil {
		return nil, nil, ErrNotInitialized
	}
	if len(publicKey) != k.PublicKeyLength() {
		return nil, nil, ErrEncapsulationFailed
	}
	ciphertext, sharedSecret, err := k.kem.Encapsulate(publicKey)
	if err != nil {
		return nil, nil, ErrEncapsulationFailed
	}
	return ciphertext, sharedSecret, nil
}

// Decapsulate recovers the shared secret from ciphertext using the secret key
func (k *Kyber768) Decapsulate(ciphertext []byte) ([]byte, error) {
	if k.kem == nil {
		return nil, ErrNotInitialized
	}
	if len(ciphertext) != k.CiphertextLength() {
		return nil, ErrDecapsulationFailed
	}
	sharedSecret, err := k.kem.Decapsulate(ciphertext)
	if err != nil {
		return nil, ErrDecapsulationFailed
	}
	return sharedSecret, nil
}

// Details returns the algorithm details
func (k *Kyber768) Details() oqs.KeyEncapsulationDetails {
	if k.kem == nil {
		return oqs.KeyEncapsulationDetails{}
	}
	return k.kem.Details()
}

// PublicKeyLength returns the public key size in bytes
func (k *Kyber768) PublicKeyLength() int {
	return k.Details().LengthPublicKey
}

// SecretKeyLength returns the secret key size in bytes
func (k *Kyber768) SecretKeyLength() int {
	return k.Details().LengthSecretKey
}

// CiphertextLength returns the ciphertext size in bytes
func (k *Kyber768) CiphertextLength() int {
	return k.Details().LengthCiphertext
}

// SharedSecretLength returns the shared secret size in bytes
func (k *Kyber768) SharedSecretLength() int {
	return k.Details().LengthSharedSecret
}
