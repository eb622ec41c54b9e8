// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/latebind/latebind/internal/config"
	"github.com/latebind/latebind/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.cue")
	testutil.MustWriteFile(t, path, []byte(`
resolver: criteria: ["name", "culture"]
host: probe_paths: ["/opt/modules"]
log: level: "info"
`))

	stdout, stderr, err := runCLI(t, config.NewProvider(), "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{path, "Name|Culture", "/opt/modules", "info"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout should contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, defaultsProvider(), "--config", filepath.Join(t.TempDir(), "absent.cue"), "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	for _, want := range []string{"(using defaults)", "Name|Version", "(none configured)", "warn"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout should contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestConfigPathAndInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.cue")

	stdout, _, err := runCLI(t, defaultsProvider(), "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path returned error: %v", err)
	}
	if strings.TrimSpace(stdout) != path {
		t.Errorf("config path printed %q, want %q", strings.TrimSpace(stdout), path)
	}

	stdout, _, err = runCLI(t, defaultsProvider(), "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(stdout, "Created") {
		t.Errorf("config init should report creation, got:\n%s", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file was not written: %v", err)
	}
	if !strings.Contains(string(data), `level: "warn"`) {
		t.Errorf("generated config = %q, want default log level", data)
	}

	stdout, _, err = runCLI(t, config.NewProvider(), "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("second config init returned error: %v", err)
	}
	if !strings.Contains(stdout, "already exists") {
		t.Errorf("second config init should leave the file alone, got:\n%s", stdout)
	}
}

func TestConfigPath_PlatformDefault(t *testing.T) {
	// Not parallel: points the platform config root at a temp dir.
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup only applies on Linux")
	}
	dir := t.TempDir()
	t.Cleanup(testutil.SetConfigHome(t, dir))

	stdout, _, err := runCLI(t, defaultsProvider(), "config", "path")
	if err != nil {
		t.Fatalf("config path returned error: %v", err)
	}
	if want := filepath.Join(dir, config.AppName, "config.cue"); strings.TrimSpace(stdout) != want {
		t.Errorf("config path printed %q, want %q", strings.TrimSpace(stdout), want)
	}
}
