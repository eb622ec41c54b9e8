// SPDX-License-Identifier: MPL-2.0

package assembly

// Module is a loaded module as seen by the host registry and the resolver.
type Module interface {
	// Identity returns the identity the module was loaded with.
	Identity() Identity
	// Location returns the absolute path of the file the module was loaded from.
	Location() string
}

// Handler resolves identities the host registry could not find on its own.
// Handlers are compared by value when unregistered, so implementations should
// be pointer types.
type Handler interface {
	// Resolve returns the module satisfying the display name identityText.
	// found is false with a nil error when the handler has no candidate.
	Resolve(identityText string) (m Module, found bool, err error)
}
