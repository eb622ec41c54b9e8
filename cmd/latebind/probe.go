// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/latebind/latebind/internal/issue"
	"github.com/latebind/latebind/pkg/assembly"
	"github.com/latebind/latebind/pkg/host"
	"github.com/latebind/latebind/pkg/resolver"
	"github.com/latebind/latebind/pkg/types"

	"github.com/spf13/cobra"
)

// newProbeCommand creates the `latebind probe` command.
func newProbeCommand(app *App) *cobra.Command {
	var criteria string

	cmd := &cobra.Command{
		Use:   "probe <identity> <dependency-root>",
		Short: "Find the file a resolver would bind for an identity",
		Long: `Search a dependency root for a module identity without loading it.

The search is the one the load command performs: depth first, the files of
a directory before its subdirectories, first match wins. Nothing is
registered with a host registry.

Examples:
  latebind probe "Contoso.Data, Version=1.2" ./deps
  latebind probe --criteria name,culture "Strings, Culture=de-DE" ./deps`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, app, args[0], args[1], criteria)
		},
	}

	cmd.Flags().StringVar(&criteria, "criteria", "", "identity attributes that must agree (e.g. name,version)")

	return cmd
}

func runProbe(cmd *cobra.Command, app *App, text, root, criteriaFlag string) error {
	criteria, err := app.matchCriteria(criteriaFlag)
	if err != nil {
		return app.fail(cmd, types.ExitUsage, "invalid match criteria", err)
	}

	requested, err := assembly.ParseIdentity(text)
	if err != nil {
		return app.fail(cmd, types.ExitUsage, "invalid identity", issue.NewErrorContext().
			WithOperation("parse identity").
			WithResource(text).
			WithIssue(issue.InvalidIdentityId).
			Wrap(err).
			BuildError())
	}

	res, err := resolver.New(root,
		resolver.WithCriteria(criteria),
		resolver.WithRegistrar(host.NewRegistry()),
		resolver.WithLogger(app.logger),
	)
	if err != nil {
		return app.fail(cmd, types.ExitFailure, "cannot use dependency root", resolverError(root, err))
	}

	path, found := res.Find(requested)
	if !found {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s No module matching %s on %s under %s\n",
			ErrorStyle.Render(errorIcon),
			identityStyle.Render(requested.String()),
			criteria,
			pathStyle.Render(res.Root()))
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: types.ExitFailure}
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
