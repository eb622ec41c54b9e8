// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/latebind/latebind/internal/issue"
	"github.com/latebind/latebind/pkg/assembly"
	"github.com/latebind/latebind/pkg/host"
	"github.com/latebind/latebind/pkg/resolver"
	"github.com/latebind/latebind/pkg/types"

	"github.com/spf13/cobra"
)

// newLoadCommand creates the `latebind load` command.
func newLoadCommand(app *App) *cobra.Command {
	var criteria string

	cmd := &cobra.Command{
		Use:   "load <module> <dependency-root>",
		Short: "Load a module, resolving its references from a dependency root",
		Long: `Load a module and bind every module it references.

A host registry probes the module's own directory (and host.probe_paths)
for "<Name>.lbm". References it cannot find there are searched for under the
dependency root by a resolver using the selected match criteria
(resolver.criteria, "name,version" by default). The resolver is stopped
before the command exits.

Examples:
  latebind load ./app/App.lbm ./deps
  latebind load --criteria name ./app/App.lbm ./deps`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, app, args[0], args[1], criteria)
		},
	}

	cmd.Flags().StringVar(&criteria, "criteria", "", "identity attributes that must agree (e.g. name,version)")

	return cmd
}

func runLoad(cmd *cobra.Command, app *App, modulePath, root, criteriaFlag string) error {
	criteria, err := app.matchCriteria(criteriaFlag)
	if err != nil {
		return app.fail(cmd, types.ExitUsage, "invalid match criteria", err)
	}

	absModule, err := filepath.Abs(modulePath)
	if err != nil {
		return app.fail(cmd, types.ExitUsage, "invalid module path", err)
	}

	probePaths := append([]string{filepath.Dir(absModule)}, app.cfg.Host.ProbePaths...)
	registry := host.NewRegistry(
		host.WithProbePaths(probePaths...),
		host.WithLogger(app.logger),
	)

	res, err := resolver.New(root,
		resolver.WithCriteria(criteria),
		resolver.WithRegistrar(registry),
		resolver.WithLogger(app.logger),
	)
	if err != nil {
		return app.fail(cmd, types.ExitFailure, "cannot use dependency root", resolverError(root, err))
	}

	res.Start()
	defer res.Stop()

	m, err := registry.LoadFile(absModule)
	if err != nil {
		if errors.Is(err, host.ErrModuleNotFound) {
			return app.fail(cmd, types.ExitFailure, "file not found", moduleNotFoundError(absModule, criteria, err))
		}
		return app.fail(cmd, types.ExitFailure, "load failed", loadError(absModule, err))
	}

	reportLoaded(cmd.OutOrStdout(), m, registry.Modules())
	return nil
}

// reportLoaded prints the loaded module followed by every module bound while
// loading it, in load order.
func reportLoaded(w io.Writer, m assembly.Module, loaded []assembly.Module) {
	fmt.Fprintf(w, "%s Loaded %s\n", SuccessStyle.Render(successIcon), identityStyle.Render(m.Identity().String()))
	fmt.Fprintf(w, "  %s\n", pathStyle.Render(m.Location()))

	if len(loaded) <= 1 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Bound references"))
	for _, dep := range loaded {
		if dep.Location() == m.Location() {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", infoIcon, identityStyle.Render(dep.Identity().String()))
		fmt.Fprintf(w, "    %s\n", pathStyle.Render(dep.Location()))
	}
}

func resolverError(root string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("open dependency root").
		WithResource(root)
	if errors.Is(err, resolver.ErrDirectoryNotFound) {
		ctx = ctx.WithSuggestion("Check that the dependency root exists and is a directory").
			WithIssue(issue.DirectoryNotFoundId)
	}
	return ctx.Wrap(err).BuildError()
}

func moduleNotFoundError(path string, criteria assembly.MatchCriteria, err error) error {
	return issue.NewErrorContext().
		WithOperation("load module").
		WithResource(path).
		WithSuggestion(fmt.Sprintf("No module under the dependency root matched on %s", criteria)).
		WithSuggestion("Use 'latebind probe' to test a single identity").
		WithIssue(issue.ModuleNotFoundId).
		Wrap(err).
		BuildError()
}

func loadError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("load module").
		WithResource(path)
	if id := issueFor(err); id != 0 {
		ctx = ctx.WithIssue(id)
	}
	return ctx.Wrap(err).BuildError()
}
