// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  bool
		lvl   log.Level
	}{
		{LogLevelDebug, true, log.DebugLevel},
		{LogLevelInfo, true, log.InfoLevel},
		{LogLevelWarn, true, log.WarnLevel},
		{LogLevelError, true, log.ErrorLevel},
		{"", false, log.WarnLevel},
		{"DEBUG", false, log.WarnLevel},
		{"trace", false, log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.level.IsValid()
			if ok != tt.want {
				t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.level, ok, tt.want)
			}
			if !ok {
				if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidLogLevel) {
					t.Errorf("errors = %v, want one ErrInvalidLogLevel", errs)
				}
			}
			if got := tt.level.Level(); got != tt.lvl {
				t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.level, got, tt.lvl)
			}
		})
	}
}

func TestConfig_IsValid_CollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Resolver.Criteria = []string{"name", "flavor"}
	cfg.Log.Level = "loud"

	ok, errs := cfg.IsValid()
	if ok {
		t.Fatal("IsValid() = true, want false")
	}
	var cfgErr *InvalidConfigError
	if len(errs) != 1 || !errors.As(errs[0], &cfgErr) {
		t.Fatalf("errors = %v, want one *InvalidConfigError", errs)
	}
	if len(cfgErr.FieldErrors) != 2 {
		t.Errorf("FieldErrors = %v, want 2 entries", cfgErr.FieldErrors)
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}
}
