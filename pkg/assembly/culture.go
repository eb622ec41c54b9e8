// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// CultureNeutral is the culture of modules that are not localized.
const CultureNeutral Culture = "neutral"

// ErrInvalidCulture is the sentinel error wrapped by InvalidCultureError.
var ErrInvalidCulture = errors.New("invalid culture")

type (
	// Culture is a canonical BCP 47 language tag or the CultureNeutral sentinel.
	Culture string

	// InvalidCultureError is returned when a culture string is not a well-formed language tag.
	InvalidCultureError struct {
		Value string
		Err   error
	}
)

// Error implements the error interface.
func (e *InvalidCultureError) Error() string {
	return fmt.Sprintf("invalid culture %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidCulture so callers can use errors.Is for programmatic detection.
func (e *InvalidCultureError) Unwrap() error { return ErrInvalidCulture }

// ParseCulture canonicalizes a culture name. The empty string and "neutral"
// (any case) yield CultureNeutral; anything else must parse as a language tag
// and is returned in canonical form ("en-us" becomes "en-US").
func ParseCulture(s string) (Culture, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(CultureNeutral)) {
		return CultureNeutral, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", &InvalidCultureError{Value: s, Err: err}
	}
	return Culture(tag.String()), nil
}

// IsNeutral reports whether c is the neutral sentinel.
func (c Culture) IsNeutral() bool { return c == CultureNeutral || c == "" }

// String returns the culture name.
func (c Culture) String() string {
	if c == "" {
		return string(CultureNeutral)
	}
	return string(c)
}
