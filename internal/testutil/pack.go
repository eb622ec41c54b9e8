// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// PackSpec describes a module pack fixture. Only Name is required.
type PackSpec struct {
	Name           string            `yaml:"name"`
	Version        string            `yaml:"version,omitempty"`
	Culture        string            `yaml:"culture,omitempty"`
	PublicKeyToken string            `yaml:"publicKeyToken,omitempty"`
	Description    string            `yaml:"description,omitempty"`
	References     []string          `yaml:"references,omitempty"`
	Files          map[string]string `yaml:"-"`
}

// WritePack writes a module pack with a module.yaml manifest built from spec
// and returns path. Parent directories are created.
func WritePack(t testing.TB, path string, spec PackSpec) string {
	t.Helper()

	manifest, err := yaml.Marshal(spec)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	entries := map[string]string{"module.yaml": string(manifest)}
	for name, body := range spec.Files {
		entries[name] = body
	}
	return WriteZip(t, path, entries)
}

// WriteZip writes a ZIP archive holding the given entries and returns path.
func WriteZip(t testing.TB, path string, entries map[string]string) string {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close %s: %v", path, err)
	}
	return path
}

// WriteCorrupt writes a file that is not a module pack and returns path.
func WriteCorrupt(t testing.TB, path string) string {
	t.Helper()
	MustWriteFile(t, path, []byte("MZ\x90\x00 this is not a module pack"))
	return path
}
