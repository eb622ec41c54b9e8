// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/latebind/latebind/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the latebind command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "latebind",
		Short: "Resolve module references from a dependency directory",
		Long: TitleStyle.Render("latebind") + SubtitleStyle.Render(" - late-binding module resolution") + `

latebind loads a module and binds its references. References the host
registry cannot satisfy from its probe paths are searched for under a
dependency root, depth first, comparing module identities by the selected
match criteria.

` + SubtitleStyle.Render("Examples:") + `
  latebind load ./app/App.lbm ./deps          Load App.lbm, resolving from ./deps
  latebind probe "Lib, Version=2.0" ./deps    Find the file that would be bound
  latebind inspect ./deps/lib.lbm             Show a module's identity
  latebind pack ./lib                         Build lib.lbm from a directory
  latebind config show                        Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.initialize(cmd.Context()); err != nil {
				return app.fail(cmd, types.ExitFailure, "configuration error", err)
			}
			return nil
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging and full error chains")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/latebind/config.cue)")

	rootCmd.AddCommand(newLoadCommand(app))
	rootCmd.AddCommand(newProbeCommand(app))
	rootCmd.AddCommand(newInspectCommand(app))
	rootCmd.AddCommand(newPackCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the CLI and exits the process with the command's exit code.
// It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
