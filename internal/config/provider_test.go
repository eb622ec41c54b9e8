// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/latebind/latebind/pkg/types"
)

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       LoadOptions
		wantErrors int
	}{
		{"all empty", LoadOptions{}, 0},
		{"all valid", LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/config"}, 0},
		{"blank file path", LoadOptions{ConfigFilePath: types.FilesystemPath("   ")}, 1},
		{"blank dir path", LoadOptions{ConfigDirPath: types.FilesystemPath("\t")}, 1},
		{"both blank", LoadOptions{ConfigFilePath: " ", ConfigDirPath: "\n"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.Validate()
			if tt.wantErrors == 0 {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Fatalf("error should wrap ErrInvalidLoadOptions, got: %v", err)
			}
			var loadErr *InvalidLoadOptionsError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
			}
			if len(loadErr.FieldErrors) != tt.wantErrors {
				t.Errorf("expected %d field errors, got %d", tt.wantErrors, len(loadErr.FieldErrors))
			}
			for _, fe := range loadErr.FieldErrors {
				if !errors.Is(fe, types.ErrInvalidFilesystemPath) {
					t.Errorf("field error %v should wrap ErrInvalidFilesystemPath", fe)
				}
			}
		})
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	got, err := FilePath(LoadOptions{ConfigFilePath: "/etc/latebind.cue", ConfigDirPath: "/ignored"})
	if err != nil || got != "/etc/latebind.cue" {
		t.Errorf("FilePath(file) = (%q, %v), want /etc/latebind.cue", got, err)
	}
	got, err = FilePath(LoadOptions{ConfigDirPath: "/cfg"})
	if err != nil || got != "/cfg/config.cue" {
		t.Errorf("FilePath(dir) = (%q, %v), want /cfg/config.cue", got, err)
	}
}
