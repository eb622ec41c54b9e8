// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error instead of
// returning it.
//
// Environment helpers (MustSetenv, SetHomeDir, SetConfigHome) return cleanup
// functions that restore the previous state. Module-pack builders (WritePack,
// WriteCorrupt) create fixture files for resolver and host registry tests.
package testutil
