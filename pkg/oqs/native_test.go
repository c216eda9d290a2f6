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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// The context structs must line up byte-for-byte with the native OQS_KEM and
// OQS_SIG layouts: two C strings, two unsigned bytes, then size_t length
// fields. The offsets below hold for both 32-bit and 64-bit targets.
func TestKEMContextLayout(t *testing.T) {
	ptr := unsafe.Sizeof(uintptr(0))
	var c kemContext

	assert.Equal(t, uintptr(0), unsafe.Offsetof(c.methodName))
	assert.Equal(t, ptr, unsafe.Offsetof(c.algVersion))
	assert.Equal(t, 2*ptr, unsafe.Offsetof(c.claimedNISTLevel))
	assert.Equal(t, 2*ptr+1, unsafe.Offsetof(c.indCCA))
	assert.Equal(t, 3*ptr, unsafe.Offsetof(c.lengthPublicKey))
	assert.Equal(t, 4*ptr, unsafe.Offsetof(c.lengthSecretKey))
	assert.Equal(t, 5*ptr, unsafe.Offsetof(c.lengthCiphertext))
	assert.Equal(t, 6*ptr, unsafe.Offsetof(c.lengthSharedSecret))
	assert.Equal(t, 7*ptr, unsafe.Offsetof(c.keypairCb))
}

func TestSigContextLayout(t *testing.T) {
	ptr := unsafe.Sizeof(uintptr(0))
	var c sigContext

	assert.Equal(t, uintptr(0), unsafe.Offsetof(c.methodName))
	assert.Equal(t, ptr, unsafe.Offsetof(c.algVersion))
	assert.Equal(t, 2*ptr, unsafe.Offsetof(c.claimedNISTLevel))
	assert.Equal(t, 2*ptr+1, unsafe.Offsetof(c.eufCMA))
	assert.Equal(t, 3*ptr, unsafe.Offsetof(c.lengthPublicKey))
	assert.Equal(t, 4*ptr, unsafe.Offsetof(c.lengthSecretKey))
	assert.Equal(t, 5*ptr, unsafe.Offsetof(c.lengthSignature))
	assert.Equal(t, 6*ptr, unsafe.Offsetof(c.keypairCb))
}

func TestGoString(t *testing.T) {
	assert.Equal(t, "", goString(nil))

	buf := []byte{'M', 'L', '-', 'K', 'E', 'M', 0, 'x'}
	assert.Equal(t, "ML-KEM", goString(&buf[0]))

	empty := []byte{0}
	assert.Equal(t, "", goString(&empty[0]))
}

func TestBufPtr(t *testing.T) {
	assert.Nil(t, bufPtr(nil))
	assert.Nil(t, bufPtr([]byte{}))

	buf := []byte{1, 2, 3}
	assert.Equal(t, &buf[0], bufPtr(buf))
}

func TestFixedBuffer(t *testing.T) {
	// Zero-pads short input
	assert.Equal(t, []byte{1, 2, 0, 0}, fixedBuffer([]byte{1, 2}, 4))
	// Truncates long input
	assert.Equal(t, []byte{1, 2}, fixedBuffer([]byte{1, 2, 3, 4}, 2))
	// Never aliases the source
	src := []byte{9, 9}
	buf := fixedBuffer(src, 2)
	buf[0] = 0
	assert.Equal(t, byte(9), src[0])
}

func TestZeroize(t *testing.T) {
	buf := []byte{1, 2, 3}
	zeroize(buf)
	assert.Equal(t, []byte{0, 0, 0}, buf)
	zeroize(nil)
}
