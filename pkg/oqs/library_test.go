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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryName(t *testing.T) {
	assert.Equal(t, "oqs.dll", libraryName("windows"))
	assert.Equal(t, "liboqs.dylib", libraryName("darwin"))
	assert.Equal(t, "liboqs.so", libraryName("linux"))
	assert.Equal(t, "liboqs.so", libraryName("freebsd"))
}

func TestCandidatePathsWithInstallPath(t *testing.T) {
	getenv := func(key string) string {
		if key == InstallPathEnv {
			return "/opt/oqs/liboqs.so"
		}
		return ""
	}

	paths := candidatePaths("linux", getenv)
	require.Len(t, paths, 3)
	assert.Equal(t, "/opt/oqs/liboqs.so", paths[0])
	assert.Equal(t, "liboqs.so", paths[1])
	assert.Equal(t, "."+string(os.PathSeparator)+"liboqs.so", paths[2])
}

func TestCandidatePathsWithoutInstallPath(t *testing.T) {
	getenv := func(string) string { return "" }

	paths := candidatePaths("windows", getenv)
	require.Len(t, paths, 2)
	assert.Equal(t, "oqs.dll", paths[0])
	assert.Equal(t, "."+string(os.PathSeparator)+"oqs.dll", paths[1])
}

func TestLoadLibraryNotFound(t *testing.T) {
	// Explicit paths that don't exist are skipped rather than attempted
	_, _, err := loadLibrary([]string{
		"",
		filepath.Join(t.TempDir(), "liboqs.so"),
	})
	assert.ErrorIs(t, err, ErrLibraryNotFound)
}

func TestLoadLibraryLoadError(t *testing.T) {
	// A candidate that exists on disk but is not a shared library must
	// surface a load failure, not fall through to not-found
	path := filepath.Join(t.TempDir(), "liboqs.so")
	require.NoError(t, os.WriteFile(path, []byte("not a shared library"), 0o644))

	_, _, err := loadLibrary([]string{path})
	var loadErr *LibraryLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
	assert.NotNil(t, loadErr.Unwrap())
}
