// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/latebind/latebind/internal/testutil"
	"github.com/latebind/latebind/pkg/types"
)

func TestInspect_ModulePack(t *testing.T) {
	t.Parallel()

	path := testutil.WritePack(t, filepath.Join(t.TempDir(), "data.lbm"), testutil.PackSpec{
		Name:        "Contoso.Data",
		Version:     "1.2",
		Culture:     "en-us",
		Description: "Data access",
		References:  []string{"Contoso.Core, Version=1.0"},
		Files:       map[string]string{"lib/data.txt": "payload"},
	})

	stdout, stderr, err := runCLI(t, defaultsProvider(), "inspect", path)
	if err != nil {
		t.Fatalf("inspect returned error: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{
		"Contoso.Data, Version=1.2, Culture=en-US",
		"module pack",
		"Data access",
		"Contoso.Core, Version=1.0",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout should contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestInspect_GoBinary(t *testing.T) {
	t.Parallel()

	exe, err := os.Executable()
	if err != nil {
		t.Skipf("cannot locate test binary: %v", err)
	}

	stdout, stderr, err := runCLI(t, defaultsProvider(), "inspect", exe)
	if err != nil {
		t.Fatalf("inspect returned error: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "Go executable") {
		t.Errorf("stdout should describe a Go executable, got:\n%s", stdout)
	}
}

func TestInspect_NotAModule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := testutil.WritePack(t, filepath.Join(dir, "good.lbm"), testutil.PackSpec{Name: "Good"})
	bad := testutil.WriteCorrupt(t, filepath.Join(dir, "bad.lbm"))

	stdout, stderr, err := runCLI(t, defaultsProvider(), "inspect", good, bad)
	wantExitCode(t, err, types.ExitFailure)
	if !strings.Contains(stdout, "Good") {
		t.Errorf("valid files are still reported, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, bad) || !strings.Contains(stderr, "not a module pack") {
		t.Errorf("stderr should explain why %s is not a module, got:\n%s", bad, stderr)
	}
}
