// SPDX-License-Identifier: MPL-2.0

// Package assembly defines module identities and the criteria used to compare them.
//
// An [Identity] is the structured form of a module's display name:
//
//	Name[, Version=1.2.3.4][, Culture=en-US][, PublicKeyToken=b77a5c561934e089]
//
// It carries a simple name, an optional [Version] tuple, a [Culture] (the
// "neutral" sentinel when unspecified) and a [PublicKeyToken] (empty for unsigned
// modules). Identities are immutable once parsed; accessors return copies.
//
// # Matching
//
// [MatchCriteria] is a bitset selecting which attributes must agree between a
// candidate and a requested identity. Unset attributes are ignored, so
// [MatchNone] matches every identity and [MatchAll] requires all four to agree.
// Bits outside the defined flags carry no meaning and are ignored.
//
// # Modules
//
// [Module] is the minimal view of a loaded module shared by the host registry and
// the resolver: its identity and the location it was loaded from. [Handler] is
// the load-failure hook the registry calls when it cannot find a module itself.
package assembly
