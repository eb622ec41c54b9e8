// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"errors"
	"fmt"
	"strings"
)

// Match flags. MatchAll is spelled out rather than computed from the others.
const (
	// MatchNone requires nothing; every identity matches.
	MatchNone MatchCriteria = 0
	// MatchName requires the simple names to be equal (case-sensitive).
	MatchName MatchCriteria = 1 << 0
	// MatchVersion requires the version tuples to be equal. An absent version
	// only matches another absent version.
	MatchVersion MatchCriteria = 1 << 1
	// MatchCulture requires the cultures to be equal, including the neutral sentinel.
	MatchCulture MatchCriteria = 1 << 2
	// MatchPublicKey requires the public key tokens to be byte-for-byte equal.
	MatchPublicKey MatchCriteria = 1 << 3
	// MatchAll requires all four attributes to agree.
	MatchAll MatchCriteria = 0x0F
)

// ErrInvalidMatchCriteria is the sentinel error wrapped by InvalidMatchCriteriaError.
var ErrInvalidMatchCriteria = errors.New("invalid match criteria")

type (
	// MatchCriteria is a set of identity attributes that must agree for a
	// candidate to satisfy a request. Bits outside MatchAll are ignored.
	MatchCriteria uint8

	// InvalidMatchCriteriaError is returned when a criteria name is not recognized.
	InvalidMatchCriteriaError struct {
		Value string
	}
)

// criteriaNames lists the base flags in display order.
var criteriaNames = []struct {
	flag MatchCriteria
	name string
}{
	{MatchName, "Name"},
	{MatchVersion, "Version"},
	{MatchCulture, "Culture"},
	{MatchPublicKey, "PublicKey"},
}

// Error implements the error interface.
func (e *InvalidMatchCriteriaError) Error() string {
	return fmt.Sprintf("invalid match criteria %q (expected name, version, culture, publickey, all or none)", e.Value)
}

// Unwrap returns ErrInvalidMatchCriteria so callers can use errors.Is for programmatic detection.
func (e *InvalidMatchCriteriaError) Unwrap() error { return ErrInvalidMatchCriteria }

// Has reports whether every bit of flag is set in c. Has(MatchNone) is false.
func (c MatchCriteria) Has(flag MatchCriteria) bool {
	flag &= MatchAll
	return flag != 0 && c&flag == flag
}

// Union returns c with all the given flags added.
func (c MatchCriteria) Union(flags ...MatchCriteria) MatchCriteria {
	for _, f := range flags {
		c |= f
	}
	return c
}

// Without returns c with the given flags cleared.
func (c MatchCriteria) Without(flags ...MatchCriteria) MatchCriteria {
	for _, f := range flags {
		c &^= f
	}
	return c
}

// Match reports whether candidate satisfies requested on every attribute in c.
func (c MatchCriteria) Match(candidate, requested Identity) bool {
	if c.Has(MatchName) && candidate.name != requested.name {
		return false
	}
	if c.Has(MatchVersion) && candidate.version != requested.version {
		return false
	}
	if c.Has(MatchCulture) && candidate.Culture() != requested.Culture() {
		return false
	}
	if c.Has(MatchPublicKey) && !candidate.token.Equal(requested.token) {
		return false
	}
	return true
}

// String returns "All", "None" or the set flags joined with '|', e.g. "Name|Version".
func (c MatchCriteria) String() string {
	switch c & MatchAll {
	case MatchAll:
		return "All"
	case MatchNone:
		return "None"
	}
	names := make([]string, 0, len(criteriaNames))
	for _, cn := range criteriaNames {
		if c.Has(cn.flag) {
			names = append(names, cn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseMatchCriteria parses flag names separated by commas, pipes or spaces,
// case-insensitively. "all" and "none" are accepted; an empty string is MatchNone.
func ParseMatchCriteria(s string) (MatchCriteria, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ' ' || r == '\t'
	})
	return ParseMatchCriteriaList(fields)
}

// ParseMatchCriteriaList is ParseMatchCriteria for an already split list.
func ParseMatchCriteriaList(names []string) (MatchCriteria, error) {
	var c MatchCriteria
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		switch strings.ToLower(name) {
		case "all":
			c |= MatchAll
		case "none", "":
		case "name":
			c |= MatchName
		case "version":
			c |= MatchVersion
		case "culture":
			c |= MatchCulture
		case "publickey", "publickeytoken":
			c |= MatchPublicKey
		default:
			return MatchNone, &InvalidMatchCriteriaError{Value: name}
		}
	}
	return c, nil
}
