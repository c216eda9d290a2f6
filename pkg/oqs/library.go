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
	"strings"
)

// InstallPathEnv is the environment variable giving an explicit filesystem
// path to the liboqs shared library. When set, it is tried before the
// operating system's standard library search.
const InstallPathEnv = "LIBOQS_INSTALL_PATH"

// libraryName returns the platform-specific liboqs base name. Windows uses
// the short alias; other platforms use the shared-object name.
func libraryName(goos string) string {
	switch goos {
	case "windows":
		return "oqs.dll"
	case "darwin":
		return "liboqs.dylib"
	default:
		return "liboqs.so"
	}
}

// candidatePaths builds the ordered list of liboqs load candidates:
// the InstallPathEnv override, the bare library name (delegated to the
// system loader's search), and the library name in the current directory.
// Never touches the filesystem itself.
func candidatePaths(goos string, getenv func(string) string) []string {
	name := libraryName(goos)
	var paths []string
	if p := getenv(InstallPathEnv); p != "" {
		paths = append(paths, p)
	}
	return append(paths, name, "."+string(os.PathSeparator)+name)
}

// loadLibrary tries each candidate in order and returns the handle and path
// of the first successful load.
//
// Candidates containing a path separator must exist on disk before a load is
// attempted; a load failure on such a path is fatal since the library was
// found but could not be loaded. The bare library name is handed to the
// dynamic loader directly, and a miss there just advances to the next
// candidate.
func loadLibrary(paths []string) (uintptr, string, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if strings.ContainsRune(path, os.PathSeparator) || strings.ContainsRune(path, '/') {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			handle, err := dlopen(path)
			if err != nil {
				return 0, "", &LibraryLoadError{Path: path, Err: err}
			}
			return handle, path, nil
		}
		if handle, err := dlopen(path); err == nil {
			return handle, path, nil
		}
	}
	return 0, "", ErrLibraryNotFound
}
