// SPDX-License-Identifier: MPL-2.0

// Package modpack implements the module pack file format.
//
// A module pack is a ZIP archive, conventionally named "<name>.lbm", with exactly
// one manifest at the archive root:
//
//   - module.cue  (validated against the embedded #Manifest schema)
//   - module.yaml or module.yml
//   - module.toml
//
// The manifest declares the module identity and the identities it references:
//
//	name:           "Contoso.Data"
//	version:        "1.2.0.0"
//	culture:        "neutral"
//	publicKeyToken: "b77a5c561934e089"
//	references: ["Contoso.Core, Version=1.0.0.0"]
//
// Every other archive entry is payload and is not interpreted.
//
// [ReadIdentity] is the metadata-extraction primitive used by the resolver,
// [Open] is the loading primitive used by the host registry and [Pack] builds
// an archive from a directory.
package modpack
