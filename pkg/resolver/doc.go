// SPDX-License-Identifier: MPL-2.0

// Package resolver finds modules the host registry could not resolve by
// scanning a directory tree.
//
// A [Resolver] owns a root directory and a set of [assembly.MatchCriteria].
// [Resolver.Start] attaches it to a [Registrar] (by default the process-wide
// [host.Default] registry); from then on every identity the host fails to
// resolve is passed to [Resolver.Resolve], which searches the root depth-first,
// files before subdirectories, and loads the first file whose identity
// satisfies the criteria.
//
// Identities are read by an [Extractor] and cached per session. Files that are
// not modules are cached as unparseable and skipped silently. Directories that
// cannot be listed contribute no candidates. [Resolver.Stop] detaches the
// resolver and drops the cache, so each session starts cold.
package resolver
