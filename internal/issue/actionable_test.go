// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var errNoManifest = errors.New("no manifest found")

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "load module"},
			want: "failed to load module",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load module", Resource: "/deps/lib.lbm"},
			want: "failed to load module: /deps/lib.lbm",
		},
		{
			name: "with cause",
			err:  &ActionableError{Operation: "pack module", Cause: errNoManifest},
			want: "failed to pack module: no manifest found",
		},
		{
			name: "all fields",
			err: &ActionableError{
				Operation:   "pack module",
				Resource:    "./lib",
				Suggestions: []string{"ignored by Error"},
				Cause:       errNoManifest,
			},
			want: "failed to pack module: ./lib: no manifest found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_UnwrapChain(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("reading manifest: %w", errNoManifest)
	err := NewErrorContext().WithOperation("pack module").Wrap(cause).BuildError()

	if !errors.Is(err, errNoManifest) {
		t.Error("errors.Is should see through the ActionableError")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Unwrap() != cause {
		t.Errorf("Unwrap() should return the direct cause, got %v", ae)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("reference %q: %w", "Lib, Version=2.0", errors.New("module not found"))
	ae := &ActionableError{
		Operation:   "load module",
		Resource:    "app.lbm",
		Suggestions: []string{"Relax the match criteria", "Check the dependency root"},
		Cause:       cause,
	}

	plain := ae.Format(false)
	if !strings.HasPrefix(plain, ae.Error()) {
		t.Errorf("Format(false) should start with Error(), got:\n%s", plain)
	}
	for _, s := range ae.Suggestions {
		if !strings.Contains(plain, "• "+s) {
			t.Errorf("Format(false) missing suggestion %q:\n%s", s, plain)
		}
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) must not include the chain:\n%s", plain)
	}

	verbose := ae.Format(true)
	for _, want := range []string{"Error chain:", "1. reference", "2. module not found"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}

	bare := (&ActionableError{Operation: "inspect"}).Format(true)
	if bare != "failed to inspect" {
		t.Errorf("Format(true) without cause or suggestions = %q", bare)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without an operation = %v, want untyped nil", err)
	}

	ae := NewErrorContext().
		WithOperation("open dependency root").
		WithResource("/deps").
		WithSuggestion("Check the path").
		WithIssue(DirectoryNotFoundId).
		Wrap(errNoManifest).
		Build()
	if ae.Operation != "open dependency root" || ae.Resource != "/deps" || ae.Cause != errNoManifest {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 1 || ae.Issue != DirectoryNotFoundId {
		t.Errorf("Build() suggestions/issue = %v/%v", ae.Suggestions, ae.Issue)
	}
}

func TestErrorContext_ReuseCopiesSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("load configuration").WithSuggestion("first")
	a := ctx.Build()
	b := ctx.WithSuggestion("second").Build()

	if len(a.Suggestions) != 1 {
		t.Errorf("earlier build changed: %v", a.Suggestions)
	}
	if len(b.Suggestions) != 2 {
		t.Errorf("later build = %v, want two suggestions", b.Suggestions)
	}
}

func TestActionableError_Guidance(t *testing.T) {
	t.Parallel()

	none, err := (&ActionableError{Operation: "x"}).Guidance("notty")
	if err != nil || none != "" {
		t.Errorf("Guidance() without issue = (%q, %v), want empty", none, err)
	}

	text, err := (&ActionableError{Operation: "x", Issue: ModuleNotFoundId}).Guidance("notty")
	if err != nil {
		t.Fatalf("Guidance() returned error: %v", err)
	}
	if !strings.Contains(text, "Module not found!") {
		t.Errorf("Guidance() = %q, want module-not-found guidance", text)
	}
}
