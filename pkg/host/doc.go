// SPDX-License-Identifier: MPL-2.0

// Package host implements the module registry a host process loads modules
// through.
//
// A [Registry] keeps the modules loaded so far, probes a list of directories for
// "<Name>.lbm" module packs, and when both fail raises a load-failure event by
// calling every registered [assembly.Handler] in turn. The first handler that
// returns a module wins; when none does, [Registry.Load] fails with a
// [*LoadError] wrapping [ErrModuleNotFound].
//
// [Default] returns a process-wide registry. Independent registries created with
// [NewRegistry] do not share state, so several resolvers can be attached to
// different registries in the same process.
package host
