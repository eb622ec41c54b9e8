// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/latebind/latebind/internal/cueutil"
	"github.com/latebind/latebind/pkg/assembly"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// Ext is the conventional file extension of module packs.
	Ext = ".lbm"

	// MaxManifestSize bounds the uncompressed size of a manifest entry (1 MiB).
	MaxManifestSize = 1 << 20
)

// ManifestNames lists the accepted manifest file names, in lookup order.
var ManifestNames = []string{"module.cue", "module.yaml", "module.yml", "module.toml"}

//go:embed manifest_schema.cue
var manifestSchema []byte

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid module manifest")

type (
	// Manifest is the decoded module manifest.
	Manifest struct {
		Name           string   `json:"name" yaml:"name" toml:"name"`
		Version        string   `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
		Culture        string   `json:"culture,omitempty" yaml:"culture,omitempty" toml:"culture,omitempty"`
		PublicKeyToken string   `json:"publicKeyToken,omitempty" yaml:"publicKeyToken,omitempty" toml:"publicKeyToken,omitempty"`
		Description    string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		References     []string `json:"references,omitempty" yaml:"references,omitempty" toml:"references,omitempty"`
	}

	// InvalidManifestError is returned when a manifest cannot be decoded or
	// describes an invalid identity.
	InvalidManifestError struct {
		Source string
		Err    error
	}
)

// Error implements the error interface.
func (e *InvalidManifestError) Error() string {
	return fmt.Sprintf("invalid module manifest %s: %v", e.Source, e.Err)
}

// Unwrap returns ErrInvalidManifest together with the underlying cause.
func (e *InvalidManifestError) Unwrap() []error { return []error{ErrInvalidManifest, e.Err} }

// IsManifestName reports whether name (a slash-separated archive or relative
// path) is a root-level manifest file name.
func IsManifestName(name string) bool {
	if strings.Contains(name, "/") {
		return false
	}
	for _, n := range ManifestNames {
		if n == name {
			return true
		}
	}
	return false
}

// DecodeManifest decodes manifest data. The format is chosen by the extension
// of name; source is used in error messages.
func DecodeManifest(name, source string, data []byte) (*Manifest, error) {
	if len(data) > MaxManifestSize {
		return nil, &InvalidManifestError{Source: source, Err: fmt.Errorf("manifest exceeds %d bytes", MaxManifestSize)}
	}

	var (
		m   *Manifest
		err error
	)
	switch path.Ext(name) {
	case ".cue":
		m, err = cueutil.Decode[Manifest](manifestSchema, data, "#Manifest", cueutil.WithFilename(name))
	case ".yaml", ".yml":
		m = &Manifest{}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(m)
	case ".toml":
		m = &Manifest{}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(m)
	default:
		err = fmt.Errorf("unsupported manifest format %q", name)
	}
	if err != nil {
		return nil, &InvalidManifestError{Source: source, Err: err}
	}

	if _, err := m.Identity(); err != nil {
		return nil, &InvalidManifestError{Source: source, Err: err}
	}
	if _, err := m.ReferenceIdentities(); err != nil {
		return nil, &InvalidManifestError{Source: source, Err: err}
	}
	return m, nil
}

// Identity builds the identity declared by the manifest.
func (m *Manifest) Identity() (assembly.Identity, error) {
	var (
		version assembly.Version
		err     error
	)
	if strings.TrimSpace(m.Version) != "" {
		if version, err = assembly.ParseVersion(m.Version); err != nil {
			return assembly.Identity{}, err
		}
	}
	culture, err := assembly.ParseCulture(m.Culture)
	if err != nil {
		return assembly.Identity{}, err
	}
	token, err := assembly.ParsePublicKeyToken(m.PublicKeyToken)
	if err != nil {
		return assembly.Identity{}, err
	}
	return assembly.NewIdentity(m.Name, version, culture, token)
}

// ReferenceIdentities parses the declared references.
func (m *Manifest) ReferenceIdentities() ([]assembly.Identity, error) {
	refs := make([]assembly.Identity, 0, len(m.References))
	for i, text := range m.References {
		id, err := assembly.ParseIdentity(text)
		if err != nil {
			return nil, fmt.Errorf("references[%d]: %w", i, err)
		}
		refs = append(refs, id)
	}
	return refs, nil
}
