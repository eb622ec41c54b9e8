// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	// Not parallel: mutates process environment.
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}

	tmpDir := t.TempDir()
	original, had := os.LookupEnv(key)

	cleanup := SetHomeDir(t, tmpDir)
	if got := os.Getenv(key); got != tmpDir {
		t.Errorf("%s = %q, want %q", key, got, tmpDir)
	}

	cleanup()
	got, has := os.LookupEnv(key)
	if has != had || got != original {
		t.Errorf("after cleanup %s = %q (set=%v), want %q (set=%v)", key, got, has, original, had)
	}
}

func TestMustSetenv_UnsetsWhenPreviouslyUnset(t *testing.T) {
	const key = "LATEBIND_TESTUTIL_UNSET"
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}

	cleanup := MustSetenv(t, key, "1")
	if os.Getenv(key) != "1" {
		t.Fatalf("%s not set", key)
	}
	cleanup()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after cleanup", key)
	}
}
