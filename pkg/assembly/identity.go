// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"errors"
	"fmt"
	"strings"
)

// Display-name attribute keys. Keys are matched case-insensitively when parsing.
const (
	KeyVersion        = "Version"
	KeyCulture        = "Culture"
	KeyPublicKeyToken = "PublicKeyToken"
)

var (
	// ErrInvalidIdentity is the sentinel error wrapped by InvalidIdentityError.
	ErrInvalidIdentity = errors.New("invalid module identity")

	// ErrEmptyName is returned when an identity has no simple name.
	ErrEmptyName = errors.New("module name is empty")
)

type (
	// Identity describes a module: simple name, optional version, culture and
	// public key token. The zero value is not a valid identity; build one with
	// NewIdentity or ParseIdentity.
	Identity struct {
		name    string
		version Version
		culture Culture
		token   PublicKeyToken
	}

	// InvalidIdentityError is returned when identity text or components are malformed.
	// It matches both ErrInvalidIdentity and the underlying cause with errors.Is.
	InvalidIdentityError struct {
		Text string
		Err  error
	}
)

// Error implements the error interface.
func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid module identity %q: %v", e.Text, e.Err)
}

// Unwrap returns ErrInvalidIdentity together with the underlying cause.
func (e *InvalidIdentityError) Unwrap() []error { return []error{ErrInvalidIdentity, e.Err} }

// NewIdentity builds an identity from its parts. An empty culture means neutral
// and the token is copied.
func NewIdentity(name string, version Version, culture Culture, token PublicKeyToken) (Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Identity{}, &InvalidIdentityError{Text: name, Err: ErrEmptyName}
	}
	if strings.ContainsAny(name, ",=") {
		return Identity{}, &InvalidIdentityError{Text: name, Err: fmt.Errorf("name %q contains ',' or '='", name)}
	}
	if culture == "" {
		culture = CultureNeutral
	}
	var tok PublicKeyToken
	if len(token) > 0 {
		tok = append(PublicKeyToken(nil), token...)
	}
	return Identity{name: name, version: version, culture: culture, token: tok}, nil
}

// ParseIdentity parses a display name such as
// "Contoso.Data, Version=1.2.0.0, Culture=neutral, PublicKeyToken=null".
//
// Only the name is required. Unknown keys are accepted and ignored; repeated
// keys, pairs without '=' and malformed values are errors wrapping ErrInvalidIdentity.
func ParseIdentity(text string) (Identity, error) {
	parts := strings.Split(text, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Identity{}, &InvalidIdentityError{Text: text, Err: ErrEmptyName}
	}
	if strings.Contains(name, "=") {
		return Identity{}, &InvalidIdentityError{Text: text, Err: fmt.Errorf("name %q contains '='", name)}
	}

	var (
		version Version
		culture = CultureNeutral
		token   PublicKeyToken
		seen    = make(map[string]bool, len(parts)-1)
	)

	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Identity{}, &InvalidIdentityError{Text: text, Err: fmt.Errorf("attribute %q is not a key=value pair", strings.TrimSpace(part))}
		}
		folded := strings.ToLower(key)
		if seen[folded] {
			return Identity{}, &InvalidIdentityError{Text: text, Err: fmt.Errorf("attribute %q is repeated", key)}
		}
		seen[folded] = true

		var err error
		switch folded {
		case strings.ToLower(KeyVersion):
			version, err = ParseVersion(value)
		case strings.ToLower(KeyCulture):
			culture, err = ParseCulture(value)
		case strings.ToLower(KeyPublicKeyToken):
			token, err = ParsePublicKeyToken(value)
		}
		if err != nil {
			return Identity{}, &InvalidIdentityError{Text: text, Err: err}
		}
	}

	return Identity{name: name, version: version, culture: culture, token: token}, nil
}

// MustParseIdentity is like ParseIdentity but panics on error.
// It is intended for tests and package-level fixtures.
func MustParseIdentity(text string) Identity {
	id, err := ParseIdentity(text)
	if err != nil {
		panic(err)
	}
	return id
}

// Name returns the simple name.
func (id Identity) Name() string { return id.name }

// Version returns the version; IsZero reports whether it is absent.
func (id Identity) Version() Version { return id.version }

// HasVersion reports whether the identity specifies a version.
func (id Identity) HasVersion() bool { return !id.version.IsZero() }

// Culture returns the culture, CultureNeutral when unspecified.
func (id Identity) Culture() Culture {
	if id.culture == "" {
		return CultureNeutral
	}
	return id.culture
}

// PublicKeyToken returns a copy of the public key token.
func (id Identity) PublicKeyToken() PublicKeyToken {
	if len(id.token) == 0 {
		return nil
	}
	return append(PublicKeyToken(nil), id.token...)
}

// IsZero reports whether id is the zero Identity.
func (id Identity) IsZero() bool { return id.name == "" }

// Equal reports whether all four attributes agree.
func (id Identity) Equal(other Identity) bool { return MatchAll.Match(id, other) }

// String returns the canonical display name. The version is omitted when absent.
func (id Identity) String() string {
	var sb strings.Builder
	sb.WriteString(id.name)
	if !id.version.IsZero() {
		fmt.Fprintf(&sb, ", %s=%s", KeyVersion, id.version.String())
	}
	fmt.Fprintf(&sb, ", %s=%s", KeyCulture, id.Culture().String())
	fmt.Fprintf(&sb, ", %s=%s", KeyPublicKeyToken, id.token.String())
	return sb.String()
}
