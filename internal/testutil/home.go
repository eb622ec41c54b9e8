// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform home variable (USERPROFILE on Windows, HOME
// elsewhere) at dir and returns a cleanup function.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()
	if runtime.GOOS == "windows" {
		return MustSetenv(t, "USERPROFILE", dir)
	}
	return MustSetenv(t, "HOME", dir)
}

// SetConfigHome points the platform configuration root (APPDATA on Windows,
// XDG_CONFIG_HOME elsewhere) at dir and returns a cleanup function. On macOS
// the configuration root derives from the home directory, so HOME is set too.
func SetConfigHome(t testing.TB, dir string) func() {
	t.Helper()
	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "APPDATA", dir)
	case "darwin":
		return SetHomeDir(t, dir)
	default:
		return MustSetenv(t, "XDG_CONFIG_HOME", dir)
	}
}
