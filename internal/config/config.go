// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/latebind/latebind/internal/cueutil"
	"github.com/latebind/latebind/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "latebind"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. LATEBIND_LOG_LEVEL.
	EnvPrefix = "LATEBIND"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the latebind configuration directory: "latebind" under
// os.UserConfigDir (%AppData% on Windows, ~/Library/Application Support on
// macOS, $XDG_CONFIG_HOME or ~/.config elsewhere).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// FilePath returns the config file Load reads for opts. The file may not exist.
func FilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return string(opts.ConfigFilePath), nil
	}
	cfgDir, err := configDirWithOverride(string(opts.ConfigDirPath))
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading. It returns the config
// and the file it was read from ("" when only defaults and environment apply).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("resolver.criteria", defaults.Resolver.Criteria)
	v.SetDefault("host.probe_paths", defaults.Host.ProbePaths)
	v.SetDefault("log.level", string(defaults.Log.Level))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// An explicit --config file must exist; the default location is optional.
	if opts.ConfigFilePath != "" {
		if !fileExists(string(opts.ConfigFilePath)) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath.String()).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'latebind config show' to see default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = string(opts.ConfigFilePath)
	} else {
		cuePath, err := FilePath(opts)
		if err != nil {
			return nil, "", err
		}
		if fileExists(cuePath) {
			resolvedPath = cuePath
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'latebind config --help' for configuration options").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so validate the result.
	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Valid criteria: name, version, culture, publickey, all, none").
			WithSuggestion("Valid log levels: debug, info, warn, error").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper. Fields are optional, so the file is decoded to a
// map without requiring concreteness.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, data, "#Config", cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CreateDefaultConfig writes the default configuration to the config file
// selected by opts unless the file already exists. It returns the file path.
func CreateDefaultConfig(opts LoadOptions) (string, error) {
	cfgPath, err := FilePath(opts)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	src, err := GenerateCUE(DefaultConfig())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, []byte(src), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE renders cfg as a config file accepted by Load.
func GenerateCUE(cfg *Config) (string, error) {
	out := *cfg
	if out.Resolver.Criteria == nil {
		out.Resolver.Criteria = []string{}
	}
	if out.Host.ProbePaths == nil {
		out.Host.ProbePaths = []string{}
	}

	v := cuecontext.New().Encode(out)
	if err := v.Err(); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	var file *ast.File
	switch n := v.Syntax(cue.Concrete(true)).(type) {
	case *ast.File:
		file = n
	case *ast.StructLit:
		file = &ast.File{Decls: n.Elts}
	default:
		return "", fmt.Errorf("failed to encode config: unexpected syntax %T", n)
	}
	src, err := format.Node(file)
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}
	return "// latebind configuration file\n\n" + string(src), nil
}
