// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/latebind/latebind/internal/issue"
	"github.com/latebind/latebind/pkg/modpack"
	"github.com/latebind/latebind/pkg/types"

	"github.com/spf13/cobra"
)

// newPackCommand creates the `latebind pack` command.
func newPackCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pack <dir>",
		Short: "Build a module pack from a directory",
		Long: `Build a module pack (` + modpack.Ext + `) from a directory.

The directory must hold exactly one manifest at its root: module.cue,
module.yaml, module.yml or module.toml. Without --output the pack is written
next to the directory as "<name>` + modpack.Ext + `".

Examples:
  latebind pack ./contoso-data
  latebind pack ./contoso-data -o ./deps/Contoso.Data.lbm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packPath, err := modpack.Pack(args[0], output)
			if err != nil {
				ctx := issue.NewErrorContext().
					WithOperation("pack module").
					WithResource(args[0])
				if id := issueFor(err); id != 0 {
					ctx = ctx.WithIssue(id)
				}
				return app.fail(cmd, types.ExitFailure, "pack failed", ctx.Wrap(err).BuildError())
			}
			app.logger.Info("module packed", "path", packPath)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", SuccessStyle.Render(successIcon), pathStyle.Render(packPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: <name>"+modpack.Ext+" next to <dir>)")

	return cmd
}
