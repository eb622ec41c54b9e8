// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/latebind/latebind/internal/issue"
	"github.com/latebind/latebind/pkg/assembly"
	"github.com/latebind/latebind/pkg/gobin"
	"github.com/latebind/latebind/pkg/modpack"
	"github.com/latebind/latebind/pkg/types"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// guidanceStyle returns the glamour style for catalog guidance written to w:
// plain text unless w is a terminal.
func guidanceStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}

// fail prints headline and err to stderr and returns an ExitError carrying
// code. Under --verbose the error chain and any linked catalog guidance are
// printed as well.
func (a *App) fail(cmd *cobra.Command, code types.ExitCode, headline string, err error) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, ErrorStyle.Render(errorIcon+" "+headline))
	fmt.Fprintln(stderr, formatErrorForDisplay(err, a.verbose))

	if a.verbose {
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			guidance, renderErr := ae.Guidance(guidanceStyle(stderr))
			if renderErr != nil {
				a.logger.Debug("failed to render guidance", "issue", ae.Issue, "error", renderErr)
			} else if guidance != "" {
				fmt.Fprint(stderr, guidance)
			}
		}
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: code, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// matchCriteria returns the criteria named by flag, or the configured ones
// when flag is empty.
func (a *App) matchCriteria(flag string) (assembly.MatchCriteria, error) {
	var (
		c   assembly.MatchCriteria
		err error
	)
	if flag != "" {
		c, err = assembly.ParseMatchCriteria(flag)
	} else {
		c, err = a.cfg.Resolver.MatchCriteria()
	}
	if err != nil {
		return 0, issue.NewErrorContext().
			WithOperation("parse match criteria").
			WithResource(flag).
			WithSuggestion("Valid criteria: name, version, culture, publickey, all, none").
			WithIssue(issue.InvalidCriteriaId).
			Wrap(err).
			BuildError()
	}
	return c, nil
}

// issueFor maps module loading failures to catalog guidance. It returns 0
// when no entry applies.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, modpack.ErrInvalidManifest):
		return issue.InvalidManifestId
	case errors.Is(err, assembly.ErrInvalidIdentity):
		return issue.InvalidIdentityId
	case errors.Is(err, modpack.ErrNotModulePack), errors.Is(err, gobin.ErrNotGoBinary):
		return issue.NotAModuleId
	default:
		return 0
	}
}
