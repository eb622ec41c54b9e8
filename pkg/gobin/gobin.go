// SPDX-License-Identifier: MPL-2.0

// Package gobin reads module identities from Go executables.
//
// The identity is derived from the build information the Go toolchain embeds
// in every binary: the simple name is the last element of the main module path
// (without a "/vN" major-version suffix) and the version is the
// major.minor.patch triple of the main module version. Development builds
// ("(devel)") have no version. Go binaries are culture-neutral and unsigned.
package gobin

import (
	"debug/buildinfo"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/latebind/latebind/pkg/assembly"

	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// ErrNotGoBinary is the sentinel error wrapped by NotGoBinaryError.
var ErrNotGoBinary = errors.New("not a Go binary")

type (
	// NotGoBinaryError is returned when a file carries no Go build information.
	NotGoBinaryError struct {
		Path string
		Err  error
	}

	// Binary is a Go executable registered as a module. Its code is never run.
	Binary struct {
		path      string
		identity  assembly.Identity
		goVersion string
		mainPath  string
	}
)

// Error implements the error interface.
func (e *NotGoBinaryError) Error() string {
	return fmt.Sprintf("%s is not a Go binary: %v", e.Path, e.Err)
}

// Unwrap returns ErrNotGoBinary so callers can use errors.Is for programmatic detection.
func (e *NotGoBinaryError) Unwrap() error { return ErrNotGoBinary }

// ReadIdentity extracts the identity of the Go binary at path.
func ReadIdentity(path string) (assembly.Identity, error) {
	bi, err := buildinfo.ReadFile(path)
	if err != nil {
		return assembly.Identity{}, &NotGoBinaryError{Path: path, Err: err}
	}
	return IdentityFromBuildInfo(bi)
}

// Open reads the Go binary at path into a module record.
func Open(path string) (*Binary, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve binary path: %w", err)
	}
	bi, err := buildinfo.ReadFile(absPath)
	if err != nil {
		return nil, &NotGoBinaryError{Path: absPath, Err: err}
	}
	id, err := IdentityFromBuildInfo(bi)
	if err != nil {
		return nil, err
	}
	return &Binary{path: absPath, identity: id, goVersion: bi.GoVersion, mainPath: bi.Main.Path}, nil
}

// IdentityFromBuildInfo derives an identity from already-read build information.
func IdentityFromBuildInfo(bi *buildinfo.BuildInfo) (assembly.Identity, error) {
	modPath := bi.Main.Path
	if modPath == "" {
		modPath = bi.Path
	}
	if modPath == "" {
		return assembly.Identity{}, fmt.Errorf("build info has no module path")
	}

	prefix, _, ok := module.SplitPathVersion(modPath)
	if !ok {
		prefix = modPath
	}
	name := path.Base(prefix)

	version, err := moduleVersion(bi.Main.Version)
	if err != nil {
		return assembly.Identity{}, err
	}
	return assembly.NewIdentity(name, version, assembly.CultureNeutral, nil)
}

// moduleVersion converts a module version such as "v1.4.2" or
// "v0.0.0-20240101000000-abcdef123456" to (major, minor, patch).
// Non-semver versions, including "(devel)", yield the absent version.
func moduleVersion(v string) (assembly.Version, error) {
	if !semver.IsValid(v) {
		return assembly.Version{}, nil
	}
	canonical := strings.TrimPrefix(semver.Canonical(v), "v")
	if i := strings.IndexAny(canonical, "-+"); i >= 0 {
		canonical = canonical[:i]
	}

	fields := strings.Split(canonical, ".")
	parts := make([]uint32, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return assembly.Version{}, fmt.Errorf("version %q: %w", v, err)
		}
		parts = append(parts, uint32(n))
	}
	return assembly.NewVersion(parts...)
}

// Identity returns the binary's identity.
func (b *Binary) Identity() assembly.Identity { return b.identity }

// Location returns the absolute path of the binary.
func (b *Binary) Location() string { return b.path }

// GoVersion returns the toolchain version that built the binary.
func (b *Binary) GoVersion() string { return b.goVersion }

// MainPath returns the main module path.
func (b *Binary) MainPath() string { return b.mainPath }
