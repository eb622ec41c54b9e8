// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/latebind/latebind/internal/testutil"
	"github.com/latebind/latebind/pkg/modpack"
	"github.com/latebind/latebind/pkg/types"
)

func TestPack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "lib")
	testutil.MustWriteFile(t, filepath.Join(src, "module.cue"), []byte(`name: "Lib"
version: "2.0"
`))
	testutil.MustWriteFile(t, filepath.Join(src, "bin", "lib.so"), []byte("payload"))
	out := filepath.Join(dir, "out", "Lib.lbm")
	testutil.MustMkdirAll(t, filepath.Dir(out))

	stdout, stderr, err := runCLI(t, defaultsProvider(), "pack", src, "-o", out)
	if err != nil {
		t.Fatalf("pack returned error: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, out) {
		t.Errorf("stdout should name the pack, got:\n%s", stdout)
	}

	id, err := modpack.ReadIdentity(out)
	if err != nil {
		t.Fatalf("ReadIdentity() returned error: %v", err)
	}
	if id.Name() != "Lib" || id.Version().String() != "2.0" {
		t.Errorf("packed identity = %s, want Lib 2.0", id)
	}
}

func TestPack_WithoutManifest(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "empty")
	testutil.MustMkdirAll(t, src)

	_, stderr, err := runCLI(t, defaultsProvider(), "pack", src)
	wantExitCode(t, err, types.ExitFailure)
	if !strings.Contains(stderr, "pack failed") {
		t.Errorf("stderr should report the failure, got:\n%s", stderr)
	}
}
