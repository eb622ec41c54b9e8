// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the latebind CLI.
//
// The load command is the resolver tester: it loads a module, lets a
// Resolver attached to a host registry bind the module's references from a
// dependency root, and reports the result. The remaining commands inspect
// module files, search a dependency root without loading, build module packs
// and manage configuration.
package cmd
