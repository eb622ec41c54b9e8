// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/latebind/latebind/internal/testutil"
	"github.com/latebind/latebind/pkg/assembly"
	"github.com/latebind/latebind/pkg/host"
)

func TestResolver_AttachedToRegistry(t *testing.T) {
	t.Parallel()

	app := t.TempDir()
	deps := t.TempDir()
	appPath := testutil.WritePack(t, filepath.Join(app, "App.lbm"), testutil.PackSpec{
		Name:       "App",
		Version:    "1.0",
		References: []string{"Lib, Version=2.0"},
	})
	testutil.WritePack(t, filepath.Join(deps, "old", "lib.lbm"), testutil.PackSpec{Name: "Lib", Version: "1.0"})
	libPath := testutil.WritePack(t, filepath.Join(deps, "new", "lib.lbm"), testutil.PackSpec{
		Name:       "Lib",
		Version:    "2.0",
		References: []string{"Base"},
	})
	basePath := testutil.WritePack(t, filepath.Join(deps, "new", "base", "base.lbm"), testutil.PackSpec{Name: "Base"})
	testutil.WriteCorrupt(t, filepath.Join(deps, "new", "broken.lbm"))

	reg := host.NewRegistry()
	r, err := New(deps, WithRegistrar(reg), WithCriteria(assembly.MatchName|assembly.MatchVersion))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if _, err := reg.LoadFile(appPath); !errors.Is(err, host.ErrModuleNotFound) {
		t.Fatalf("LoadFile() without resolver error = %v, want ErrModuleNotFound", err)
	}

	r.Start()
	m, err := reg.LoadFile(appPath)
	r.Stop()
	if err != nil {
		t.Fatalf("LoadFile() with resolver unexpected error: %v", err)
	}
	if m.Identity().Name() != "App" {
		t.Errorf("LoadFile() = %q, want App", m.Identity())
	}

	var got []string
	for _, mod := range reg.Modules() {
		got = append(got, mod.Location())
	}
	want := []string{appPath, libPath, basePath}
	if len(got) != len(want) {
		t.Fatalf("Modules() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Modules()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if r.CachedEntries() != 0 {
		t.Errorf("CachedEntries() after Stop = %d, want 0", r.CachedEntries())
	}
}

func TestResolver_DefaultExtractorReadsPacks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WritePack(t, filepath.Join(root, "a.lbm"), testutil.PackSpec{Name: "Contoso", Version: "1.0", Culture: "en-US"})
	want := testutil.WritePack(t, filepath.Join(root, "b.lbm"), testutil.PackSpec{Name: "Contoso", Version: "1.0", Culture: "de-DE"})

	r, err := New(root, WithRegistrar(host.NewRegistry()))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	m, found, err := r.Resolve("Contoso, Version=1.0, Culture=de-de, PublicKeyToken=null")
	if err != nil || !found {
		t.Fatalf("Resolve() = (%v, %v, %v), want found", m, found, err)
	}
	if m.Location() != want {
		t.Errorf("Resolve() location = %q, want %q", m.Location(), want)
	}
}
