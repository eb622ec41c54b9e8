// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// nullToken is the display-name spelling of an empty PublicKeyToken.
const nullToken = "null"

// ErrInvalidPublicKeyToken is the sentinel error wrapped by InvalidPublicKeyTokenError.
var ErrInvalidPublicKeyToken = errors.New("invalid public key token")

type (
	// PublicKeyToken is the raw public key token bytes of a signed module.
	// An empty token means the module is unsigned.
	PublicKeyToken []byte

	// InvalidPublicKeyTokenError is returned when a token string is not "null"
	// or an even-length hex string.
	InvalidPublicKeyTokenError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidPublicKeyTokenError) Error() string {
	return fmt.Sprintf("invalid public key token %q: expected hex bytes or %q", e.Value, nullToken)
}

// Unwrap returns ErrInvalidPublicKeyToken so callers can use errors.Is for programmatic detection.
func (e *InvalidPublicKeyTokenError) Unwrap() error { return ErrInvalidPublicKeyToken }

// ParsePublicKeyToken decodes a hex token. The empty string and "null" yield an empty token.
func ParsePublicKeyToken(s string) (PublicKeyToken, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, nullToken) {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &InvalidPublicKeyTokenError{Value: s}
	}
	return PublicKeyToken(b), nil
}

// Equal compares two tokens by length first, then byte by byte.
// Empty tokens are equal to each other regardless of nil-ness.
func (t PublicKeyToken) Equal(other PublicKeyToken) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the token is empty (unsigned module).
func (t PublicKeyToken) IsEmpty() bool { return len(t) == 0 }

// String returns the lower-case hex form, or "null" for an empty token.
func (t PublicKeyToken) String() string {
	if len(t) == 0 {
		return nullToken
	}
	return hex.EncodeToString(t)
}
