// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/latebind/latebind/internal/config"
	"github.com/latebind/latebind/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `latebind config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage latebind configuration",
		Long: `Manage latebind configuration.

Configuration is stored in:
  - Linux: ~/.config/latebind/config.cue
  - macOS: ~/Library/Application Support/latebind/config.cue
  - Windows: %APPDATA%\latebind\config.cue

Every key can be overridden from the environment, e.g. LATEBIND_LOG_LEVEL=debug.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.FilePath(app.loadOptions())
			if err != nil {
				return app.fail(cmd, types.ExitFailure, "cannot locate configuration", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.FilePath(app.loadOptions())
			if err != nil {
				return app.fail(cmd, types.ExitFailure, "cannot locate configuration", err)
			}
			existed := fileExists(path)
			if _, err := config.CreateDefaultConfig(app.loadOptions()); err != nil {
				return app.fail(cmd, types.ExitFailure, "cannot create configuration", err)
			}
			if existed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Config file already exists: %s\n", WarningStyle.Render("!"), pathStyle.Render(path))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", SuccessStyle.Render(successIcon), pathStyle.Render(path))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	w := cmd.OutOrStdout()
	cfg := app.cfg

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, err := config.FilePath(app.loadOptions())
	if err == nil && fileExists(path) {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	criteria, _ := cfg.Resolver.MatchCriteria()
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("resolver"))
	fmt.Fprintf(w, "  criteria: %s\n", SuccessStyle.Render(fmt.Sprintf("[%s] (%s)", strings.Join(cfg.Resolver.Criteria, ", "), criteria)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("host"))
	printList(w, "probe_paths", cfg.Host.ProbePaths)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", SuccessStyle.Render(cfg.Log.Level.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func printList(w io.Writer, key string, values []string) {
	if len(values) == 0 {
		fmt.Fprintf(w, "  %s: %s\n", key, SubtitleStyle.Render("(none configured)"))
		return
	}
	fmt.Fprintf(w, "  %s:\n", key)
	for _, v := range values {
		fmt.Fprintf(w, "    - %s\n", SuccessStyle.Render(v))
	}
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
