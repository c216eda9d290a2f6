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
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// statusOK is the return value liboqs uses to signal success. Any other
// status is a failure.
const statusOK = 0

// kemContext mirrors the fixed layout of the native OQS_KEM structure.
// Only the metadata fields are read; the trailing callback pointers are
// never dereferenced (operations go through the exported OQS_KEM_* symbols).
type kemContext struct {
	methodName         *byte
	algVersion         *byte
	claimedNISTLevel   uint8
	indCCA             uint8
	lengthPublicKey    uintptr
	lengthSecretKey    uintptr
	lengthCiphertext   uintptr
	lengthSharedSecret uintptr
	keypairCb          uintptr
	encapsCb           uintptr
	decapsCb           uintptr
}

// sigContext mirrors the fixed layout of the native OQS_SIG structure.
type sigContext struct {
	methodName       *byte
	algVersion       *byte
	claimedNISTLevel uint8
	eufCMA           uint8
	lengthPublicKey  uintptr
	lengthSecretKey  uintptr
	lengthSignature  uintptr
	keypairCb        uintptr
	signCb           uintptr
	verifyCb         uintptr
}

// libFuncs holds the foreign functions bound from a loaded liboqs handle.
// Contexts are carried as raw uintptr handles; the metadata structs above
// are overlaid only to read the fixed fields.
type libFuncs struct {
	kemAlgCount      func() int32
	kemAlgIdentifier func(int32) string
	kemNew           func(string) uintptr
	kemFree          func(uintptr)
	kemKeypair       func(uintptr, *byte, *byte) int32
	kemEncaps        func(uintptr, *byte, *byte, *byte) int32
	kemDecaps        func(uintptr, *byte, *byte, *byte) int32

	sigAlgCount      func() int32
	sigAlgIdentifier func(int32) string
	sigNew           func(string) uintptr
	sigFree          func(uintptr)
	sigKeypair       func(uintptr, *byte, *byte) int32
	sigSign          func(uintptr, *byte, *uintptr, *byte, uintptr, *byte) int32
	sigVerify        func(uintptr, *byte, uintptr, *byte, uintptr, *byte) int32

	// version is optional; older liboqs builds do not export OQS_version
	version func() string
}

// bindFuncs registers every required liboqs symbol against the loaded
// handle. A missing symbol panics inside purego, which is recovered here and
// reported as an error so an incompatible library never takes the process
// down during initialization.
func bindFuncs(handle uintptr) (fn *libFuncs, err error) {
	defer func() {
		if r := recover(); r != nil {
			fn = nil
			err = fmt.Errorf("incompatible liboqs build: %v", r)
		}
	}()

	fn = &libFuncs{}
	purego.RegisterLibFunc(&fn.kemAlgCount, handle, "OQS_KEM_alg_count")
	purego.RegisterLibFunc(&fn.kemAlgIdentifier, handle, "OQS_KEM_alg_identifier")
	purego.RegisterLibFunc(&fn.kemNew, handle, "OQS_KEM_new")
	purego.RegisterLibFunc(&fn.kemFree, handle, "OQS_KEM_free")
	purego.RegisterLibFunc(&fn.kemKeypair, handle, "OQS_KEM_keypair")
	purego.RegisterLibFunc(&fn.kemEncaps, handle, "OQS_KEM_encaps")
	purego.RegisterLibFunc(&fn.kemDecaps, handle, "OQS_KEM_decaps")

	purego.RegisterLibFunc(&fn.sigAlgCount, handle, "OQS_SIG_alg_count")
	purego.RegisterLibFunc(&fn.sigAlgIdentifier, handle, "OQS_SIG_alg_identifier")
	purego.RegisterLibFunc(&fn.sigNew, handle, "OQS_SIG_new")
	purego.RegisterLibFunc(&fn.sigFree, handle, "OQS_SIG_free")
	purego.RegisterLibFunc(&fn.sigKeypair, handle, "OQS_SIG_keypair")
	purego.RegisterLibFunc(&fn.sigSign, handle, "OQS_SIG_sign")
	purego.RegisterLibFunc(&fn.sigVerify, handle, "OQS_SIG_verify")

	fn.version = bindOptionalString(handle, "OQS_version")
	return fn, nil
}

// bindOptionalString registers a zero-argument string-returning symbol,
// returning nil when the library does not export it.
func bindOptionalString(handle uintptr, name string) (fn func() string) {
	defer func() {
		if recover() != nil {
			fn = nil
		}
	}()
	purego.RegisterLibFunc(&fn, handle, name)
	return fn
}

// goString decodes a NUL-terminated C string.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// bufPtr returns a pointer to the first element of b, or nil for an empty
// slice so zero-length buffers are passed to the native layer as NULL.
func bufPtr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}

// fixedBuffer copies src into a buffer of exactly size bytes, truncating or
// zero-padding with the same semantics as the native fixed-length copy.
func fixedBuffer(src []byte, size int) []byte {
	buf := make([]byte, size)
	copy(buf, src)
	return buf
}

// zeroize wipes key material before the buffer is dropped.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
