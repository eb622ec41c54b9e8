// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/latebind/latebind/internal/issue"
	"github.com/latebind/latebind/pkg/gobin"
	"github.com/latebind/latebind/pkg/modpack"
	"github.com/latebind/latebind/pkg/types"

	"github.com/spf13/cobra"
)

// newInspectCommand creates the `latebind inspect` command.
func newInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show the identity of module files",
		Long: `Show the identity a resolver would read from each file.

Module packs also list their references and payload; Go executables show
the main module path and toolchain version. Files that are not modules are
reported with the reason and make the command exit with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, app, args)
		},
	}
}

func runInspect(cmd *cobra.Command, app *App, paths []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	failed := 0
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if err := inspectFile(stdout, path); err != nil {
			failed++
			app.logger.Debug("not a module", "path", path, "error", err)
			fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render(errorIcon), formatErrorForDisplay(issue.NewErrorContext().
				WithOperation("inspect").
				WithResource(path).
				WithIssue(issueFor(err)).
				Wrap(err).
				Build(), app.verbose))
		}
	}

	if failed > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: types.ExitFailure}
	}
	return nil
}

// inspectFile prints the module stored at path. Packs are tried before Go
// binaries, as the default extractor does.
func inspectFile(w io.Writer, path string) error {
	m, packErr := modpack.Open(path)
	if packErr == nil {
		printModulePack(w, m)
		return nil
	}
	if !errors.Is(packErr, modpack.ErrNotModulePack) {
		return packErr
	}

	b, binErr := gobin.Open(path)
	if binErr != nil {
		return errors.Join(packErr, binErr)
	}
	printGoBinary(w, b)
	return nil
}

func printModulePack(w io.Writer, m *modpack.Module) {
	fmt.Fprintln(w, identityStyle.Render(m.Identity().String()))
	printField(w, "Kind", "module pack")
	printField(w, "Location", pathStyle.Render(m.Location()))
	if m.Description() != "" {
		printField(w, "Description", m.Description())
	}
	refs := m.References()
	if len(refs) == 0 {
		printField(w, "References", SubtitleStyle.Render("(none)"))
	} else {
		names := make([]string, len(refs))
		for i, ref := range refs {
			names[i] = ref.String()
		}
		printField(w, "References", strings.Join(names, "\n"+strings.Repeat(" ", 14)))
	}
	printField(w, "Files", fmt.Sprintf("%d", len(m.Files())))
}

func printGoBinary(w io.Writer, b *gobin.Binary) {
	fmt.Fprintln(w, identityStyle.Render(b.Identity().String()))
	printField(w, "Kind", "Go executable")
	printField(w, "Location", pathStyle.Render(b.Location()))
	printField(w, "Module", b.MainPath())
	printField(w, "Go", b.GoVersion())
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s%s\n", labelStyle.Render(label), value)
}
