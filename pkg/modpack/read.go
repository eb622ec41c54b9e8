// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/latebind/latebind/pkg/assembly"
)

// ErrNotModulePack is the sentinel error wrapped by NotModulePackError.
var ErrNotModulePack = errors.New("not a module pack")

type (
	// NotModulePackError is returned when a file is not a ZIP archive or has no
	// root-level manifest.
	NotModulePackError struct {
		Path   string
		Reason string
	}

	// Module is a module pack opened from disk. It implements assembly.Module.
	Module struct {
		path        string
		identity    assembly.Identity
		references  []assembly.Identity
		description string
		files       []string
	}
)

// Error implements the error interface.
func (e *NotModulePackError) Error() string {
	return fmt.Sprintf("%s is not a module pack: %s", e.Path, e.Reason)
}

// Unwrap returns ErrNotModulePack so callers can use errors.Is for programmatic detection.
func (e *NotModulePackError) Unwrap() error { return ErrNotModulePack }

// ReadIdentity extracts the identity declared by the module pack at path.
func ReadIdentity(path string) (assembly.Identity, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return assembly.Identity{}, openError(path, err)
	}
	defer func() { _ = r.Close() }()

	m, _, err := readManifest(&r.Reader, path)
	if err != nil {
		return assembly.Identity{}, err
	}
	return m.Identity()
}

// Open reads the module pack at path: its identity, references, description and
// payload file list. Payload contents are not read.
func Open(path string) (*Module, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve module path: %w", err)
	}

	r, err := zip.OpenReader(absPath)
	if err != nil {
		return nil, openError(absPath, err)
	}
	defer func() { _ = r.Close() }()

	m, manifestName, err := readManifest(&r.Reader, absPath)
	if err != nil {
		return nil, err
	}
	id, err := m.Identity()
	if err != nil {
		return nil, &InvalidManifestError{Source: absPath, Err: err}
	}
	refs, err := m.ReferenceIdentities()
	if err != nil {
		return nil, &InvalidManifestError{Source: absPath, Err: err}
	}

	var files []string
	for _, f := range r.File {
		if f.Name == manifestName || strings.HasSuffix(f.Name, "/") {
			continue
		}
		files = append(files, f.Name)
	}

	return &Module{
		path:        absPath,
		identity:    id,
		references:  refs,
		description: m.Description,
		files:       files,
	}, nil
}

// Identity returns the module identity.
func (m *Module) Identity() assembly.Identity { return m.identity }

// Location returns the absolute path of the pack.
func (m *Module) Location() string { return m.path }

// References returns the identities the module declares as dependencies.
func (m *Module) References() []assembly.Identity {
	return append([]assembly.Identity(nil), m.references...)
}

// Description returns the manifest description.
func (m *Module) Description() string { return m.description }

// Files returns the payload entry names in archive order.
func (m *Module) Files() []string { return append([]string(nil), m.files...) }

// String returns the module's display name.
func (m *Module) String() string { return m.identity.String() }

func openError(path string, err error) error {
	if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrAlgorithm) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &NotModulePackError{Path: path, Reason: err.Error()}
	}
	return fmt.Errorf("failed to open module pack %s: %w", path, err)
}

// readManifest locates and decodes the single root-level manifest.
func readManifest(r *zip.Reader, source string) (*Manifest, string, error) {
	var found *zip.File
	for _, f := range r.File {
		if !IsManifestName(f.Name) {
			continue
		}
		if found != nil {
			return nil, "", &InvalidManifestError{
				Source: source,
				Err:    fmt.Errorf("multiple manifests (%s, %s)", found.Name, f.Name),
			}
		}
		found = f
	}
	if found == nil {
		return nil, "", &NotModulePackError{
			Path:   source,
			Reason: "no manifest (expected one of " + strings.Join(ManifestNames, ", ") + ")",
		}
	}
	if found.UncompressedSize64 > MaxManifestSize {
		return nil, "", &InvalidManifestError{Source: source, Err: fmt.Errorf("%s exceeds %d bytes", found.Name, MaxManifestSize)}
	}

	rc, err := found.Open()
	if err != nil {
		return nil, "", &InvalidManifestError{Source: source, Err: err}
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, MaxManifestSize+1))
	if err != nil {
		return nil, "", &InvalidManifestError{Source: source, Err: err}
	}

	m, err := DecodeManifest(found.Name, source+"!"+found.Name, data)
	if err != nil {
		return nil, "", err
	}
	return m, found.Name, nil
}
