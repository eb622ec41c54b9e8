// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ModuleNotFoundId Id = iota + 1
	InvalidIdentityId
	DirectoryNotFoundId
	NotAModuleId
	InvalidManifestId
	InvalidCriteriaId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Renderer interface {
		Render(in string, stylePath string) (string, error)
	}

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue guidance as terminal Markdown. stylePath is a
// glamour style name or path; "" selects the notty style.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- " + string(link))
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- " + string(link))
		}
	}
	if stylePath == "" {
		stylePath = "notty"
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

A referenced module could not be found in the probe paths or under the
dependency root.

## Things you can try:
- Check which identity the dependency root actually contains:
~~~
$ latebind inspect <dependency-root>/**/*.lbm
~~~

- Search the dependency root for the identity directly:
~~~
$ latebind probe "Name, Version=1.0" <dependency-root>
~~~

- Relax the match criteria if the version does not have to agree:
~~~
$ latebind load --criteria name <module> <dependency-root>
~~~`,
	}

	invalidIdentityIssue = &Issue{
		id: InvalidIdentityId,
		mdMsg: `
# Invalid module identity!

Identities are written as a display name:

~~~
Name[, Version=1.2.3.4][, Culture=en-US][, PublicKeyToken=b77a5c561934e089]
~~~

## Common issues:
- Empty name, or a name containing ',' or '='
- A version with more than four components or a non-numeric component
- A public key token with an odd number of hex digits
- The same key given twice`,
	}

	directoryNotFoundIssue = &Issue{
		id: DirectoryNotFoundId,
		mdMsg: `
# Directory not found!

The dependency root must be an existing directory.

## Things you can try:
- Check the path for typos
- Use an absolute path if the command runs from a different directory`,
	}

	notAModuleIssue = &Issue{
		id: NotAModuleId,
		mdMsg: `
# Not a module!

The file is neither a module pack (a ZIP archive with a module manifest at its
root) nor a Go executable with embedded build information.

## Things you can try:
- Build a module pack from a directory containing module.cue:
~~~
$ latebind pack ./mymodule
~~~`,
	}

	invalidManifestIssue = &Issue{
		id: InvalidManifestId,
		mdMsg: `
# Invalid module manifest!

The manifest could not be decoded or declares an invalid identity.

## Example module.cue:
~~~cue
name:    "Contoso.Data"
version: "1.2.0.0"
culture: "neutral"
references: ["Contoso.Core, Version=1.0.0.0"]
~~~

Only one of module.cue, module.yaml, module.yml and module.toml may be present.`,
	}

	invalidCriteriaIssue = &Issue{
		id: InvalidCriteriaId,
		mdMsg: `
# Invalid match criteria!

Criteria are a comma or '|' separated list of: name, version, culture,
publickey, all, none.

~~~
$ latebind load --criteria name,version <module> <dependency-root>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show where the configuration file is expected:
~~~
$ latebind config path
~~~

- Check the file against the schema; unknown fields are rejected
- Run with --verbose for the full error chain`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A file or directory could not be read. Directories that cannot be listed are
skipped during the search, so a module stored below one is never found.`,
	}

	issues = map[Id]*Issue{
		moduleNotFoundIssue.Id():    moduleNotFoundIssue,
		invalidIdentityIssue.Id():   invalidIdentityIssue,
		directoryNotFoundIssue.Id(): directoryNotFoundIssue,
		notAModuleIssue.Id():        notAModuleIssue,
		invalidManifestIssue.Id():   invalidManifestIssue,
		invalidCriteriaIssue.Id():   invalidCriteriaIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
	}
)

// Values returns all issues ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for id := ModuleNotFoundId; id <= PermissionDeniedId; id++ {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
