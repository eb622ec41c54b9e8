// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the size of CUE input accepted by Decode (5 MiB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// ErrFileTooLarge is the sentinel error wrapped by FileTooLargeError.
var ErrFileTooLarge = errors.New("file too large")

type (
	// FileTooLargeError is returned when input exceeds the configured size limit.
	FileTooLargeError struct {
		Filename string
		Size     int64
		Limit    int64
	}

	// Option configures Decode and DecodeMap.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

// Error implements the error interface.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d exceeds limit of %d bytes", e.Filename, e.Size, e.Limit)
}

// Unwrap returns ErrFileTooLarge so callers can use errors.Is for programmatic detection.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// WithFilename sets the file name used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete controls whether every field must be concrete after unification.
// Decode defaults to true, DecodeMap to false.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// Decode validates data against the schema definition def (e.g. "#Manifest")
// and decodes the unified value into a new T.
func Decode[T any](schema, data []byte, def string, opts ...Option) (*T, error) {
	unified, err := unify(schema, data, def, true, opts)
	if err != nil {
		return nil, err
	}
	var out T
	if err := unified.value.Decode(&out); err != nil {
		return nil, FormatError(err, unified.filename)
	}
	return &out, nil
}

// DecodeMap is like Decode but yields a generic map, for callers that merge the
// result into another configuration source.
func DecodeMap(schema, data []byte, def string, opts ...Option) (map[string]any, error) {
	unified, err := unify(schema, data, def, false, opts)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := unified.value.Decode(&out); err != nil {
		return nil, FormatError(err, unified.filename)
	}
	return out, nil
}

type unifiedValue struct {
	value    cue.Value
	filename string
}

func unify(schema, data []byte, def string, concrete bool, opts []Option) (unifiedValue, error) {
	o := options{filename: "<input>", maxFileSize: DefaultMaxFileSize, concrete: concrete}
	for _, opt := range opts {
		opt(&o)
	}

	if size := int64(len(data)); o.maxFileSize > 0 && size > o.maxFileSize {
		return unifiedValue{}, &FileTooLargeError{Filename: o.filename, Size: size, Limit: o.maxFileSize}
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return unifiedValue{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(def))
	if root.Err() != nil {
		return unifiedValue{}, fmt.Errorf("internal error: schema definition %s not found: %w", def, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if userValue.Err() != nil {
		return unifiedValue{}, FormatError(userValue.Err(), o.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return unifiedValue{}, FormatError(err, o.filename)
	}

	return unifiedValue{value: unified, filename: o.filename}, nil
}
