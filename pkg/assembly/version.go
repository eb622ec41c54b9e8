// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxVersionComponents is the maximum number of components in a Version.
const MaxVersionComponents = 4

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid version")

type (
	// Version is an ordered tuple of one to four non-negative integers.
	// The zero value is the absent version, which only equals itself.
	// Versions are comparable with ==; (1,0) and (1,0,0,0) are distinct.
	Version struct {
		parts [MaxVersionComponents]uint32
		n     uint8
	}

	// InvalidVersionError is returned when a version string or component list
	// cannot form a Version.
	InvalidVersionError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// NewVersion builds a Version from one to four components.
func NewVersion(components ...uint32) (Version, error) {
	if len(components) == 0 || len(components) > MaxVersionComponents {
		return Version{}, &InvalidVersionError{
			Value:  fmt.Sprint(components),
			Reason: fmt.Sprintf("expected 1 to %d components, got %d", MaxVersionComponents, len(components)),
		}
	}
	var v Version
	copy(v.parts[:], components)
	v.n = uint8(len(components))
	return v, nil
}

// ParseVersion parses a dotted version string such as "1.0" or "4.0.30319.42000".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, &InvalidVersionError{Value: s, Reason: "empty"}
	}

	fields := strings.Split(s, ".")
	if len(fields) > MaxVersionComponents {
		return Version{}, &InvalidVersionError{
			Value:  s,
			Reason: fmt.Sprintf("more than %d components", MaxVersionComponents),
		}
	}

	components := make([]uint32, 0, len(fields))
	for _, f := range fields {
		// ParseUint accepts a leading '+', which is not part of the grammar.
		if f == "" || f[0] < '0' || f[0] > '9' {
			return Version{}, &InvalidVersionError{Value: s, Reason: fmt.Sprintf("component %q is not a number", f)}
		}
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return Version{}, &InvalidVersionError{Value: s, Reason: fmt.Sprintf("component %q is out of range", f)}
		}
		components = append(components, uint32(n))
	}

	return NewVersion(components...)
}

// MustParseVersion is like ParseVersion but panics on error.
// It is intended for tests and package-level fixtures.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether the version is absent.
func (v Version) IsZero() bool { return v.n == 0 }

// Len returns the number of components.
func (v Version) Len() int { return int(v.n) }

// Components returns a copy of the version components.
func (v Version) Components() []uint32 {
	out := make([]uint32, v.n)
	copy(out, v.parts[:v.n])
	return out
}

// String returns the dotted form, or the empty string for the absent version.
func (v Version) String() string {
	if v.n == 0 {
		return ""
	}
	var sb strings.Builder
	for i := range int(v.n) {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(v.parts[i]), 10))
	}
	return sb.String()
}
