// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles an embedded CUE schema, unifies user data with one of
// its definitions, validates the result and decodes it into a Go value.
//
// It backs both the configuration file (config.cue) and CUE module manifests
// (module.cue). Errors carry the file name and a JSON-style path to the
// offending field, e.g. "module.cue: references[1]: conflicting values".
package cueutil
