// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/latebind/latebind/pkg/assembly"

	"github.com/charmbracelet/log"
)

const (
	// LogLevelDebug logs every search step.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs lifecycle events.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs only problems (default).
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs only failures.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level the CLI logger emits.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It collects field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// ResolverConfig configures the dependency-root resolver.
	ResolverConfig struct {
		// Criteria lists the identity attributes that must agree
		// ("name", "version", "culture", "publickey", "all", "none").
		Criteria []string `json:"criteria" mapstructure:"criteria"`
	}

	// HostConfig configures the host module registry.
	HostConfig struct {
		// ProbePaths are searched for "<Name>.lbm" before the resolver runs.
		ProbePaths []string `json:"probe_paths" mapstructure:"probe_paths"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// UIConfig configures console output.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config is the application configuration.
	Config struct {
		Resolver ResolverConfig `json:"resolver" mapstructure:"resolver"`
		Host     HostConfig     `json:"host" mapstructure:"host"`
		Log      LogConfig      `json:"log" mapstructure:"log"`
		UI       UIConfig       `json:"ui" mapstructure:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel so callers can use errors.Is for programmatic detection.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts the LogLevel to a charmbracelet/log level. Unknown values map
// to warn.
func (l LogLevel) Level() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelInfo:
		return log.InfoLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// MatchCriteria parses the configured criteria list.
func (c ResolverConfig) MatchCriteria() (assembly.MatchCriteria, error) {
	return assembly.ParseMatchCriteriaList(c.Criteria)
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors so callers can use
// errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether the Config is valid, collecting every field error.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if _, err := c.Resolver.MatchCriteria(); err != nil {
		errs = append(errs, fmt.Errorf("resolver.criteria: %w", err))
	}
	if ok, levelErrs := c.Log.Level.IsValid(); !ok {
		for _, err := range levelErrs {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{Criteria: []string{"name", "version"}},
		Host:     HostConfig{ProbePaths: []string{}},
		Log:      LogConfig{Level: LogLevelWarn},
		UI:       UIConfig{Verbose: false},
	}
}
