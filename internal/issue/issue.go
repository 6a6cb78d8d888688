// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CommandFailedId Id = iota + 1
	ToolUnavailableId
	ConflictingFormattersId
	ConfigLoadFailedId
	ShellNotFoundId
	ProjectDiscoveryFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation of the tools involved
	extLinks []HttpLink  // external links that might be useful for the user
}

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

// Markdown returns the message followed by a "See also" list of every link.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range append(slices.Clone(i.docLinks), i.extLinks...) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders Markdown() with the glamour style at stylePath ("dark",
// "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# A task command failed!

One of the commands run by the task exited with a non-zero exit code. The
command, its exit code and the tail of its output are shown above.

## Things you can try
- Run the command printed above by hand to see its full output.
- Run the task again with debug logging to see every command it runs:
~~~
$ invokelint -v lint.fast
~~~
- Formatter checks fail when files need formatting. Apply the fixes with:
~~~
$ invokelint style.fmt
~~~`,
	}

	toolUnavailableIssue = &Issue{
		id: ToolUnavailableId,
		mdMsg: `
# A required tool is not installed!

The task needs a tool that could not be found on your PATH.

## Things you can try
- Install the development dependencies of your project, for example:
~~~
$ pip install autoflake isort black
~~~
- Use Ruff as the formatter instead, which needs a single tool:
~~~
$ invokelint style.fmt --ruff
~~~`,
		docLinks: []HttpLink{"https://docs.astral.sh/ruff/"},
	}

	conflictingFormattersIssue = &Issue{
		id: ConflictingFormattersId,
		mdMsg: `
# Conflicting formatter options!

` + "`--by-ruff`" + ` formats with Ruff while ` + "`--no-ruff`" + ` disables Ruff, so they cannot be
combined.

## Things you can try
- Format with Ruff only:
~~~
$ invokelint style.fmt --by-ruff
~~~
- Format with autoflake, isort and black only:
~~~
$ invokelint style.fmt --no-ruff
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The invokelint configuration file could not be read or does not match the schema.

## Configuration file locations
1. The file given with ` + "`--config`" + `
2. ` + "`invokelint.cue`" + ` in the project directory
3. Linux: ~/.config/invokelint/config.cue
   macOS: ~/Library/Application Support/invokelint/config.cue
   Windows: %APPDATA%\invokelint\config.cue

## Things you can try
- Print a valid configuration with the current values:
~~~
$ invokelint config dump > invokelint.cue
~~~

## Example configuration
~~~cue
runtime: "native"
lint: {
  dodgy_ignore_paths: ["csvinput"]
  xenon_max: "A"
}
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find a shell for the 'native' runtime.

## Shells we look for
- Linux/macOS: sh, bash
- Windows: %COMSPEC%, cmd

## Things you can try
- Install a POSIX shell or set ` + "`shell`" + ` in your configuration
- Use the built-in shell interpreter:
~~~
$ invokelint --runtime virtual lint.fast
~~~`,
	}

	projectDiscoveryFailedIssue = &Issue{
		id: ProjectDiscoveryFailedId,
		mdMsg: `
# Failed to detect the project layout!

The packages and modules of the project could not be determined.

## Things you can try
- Run invokelint from the project root, or pass it with ` + "`--dir`" + `
- Check the ` + "`[tool.setuptools]`" + ` table of pyproject.toml
- Print what was detected:
~~~
$ invokelint path.debug
~~~`,
		docLinks: []HttpLink{"https://setuptools.pypa.io/en/latest/userguide/package_discovery.html"},
	}

	issues = map[Id]*Issue{
		commandFailedIssue.Id():          commandFailedIssue,
		toolUnavailableIssue.Id():        toolUnavailableIssue,
		conflictingFormattersIssue.Id():  conflictingFormattersIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		shellNotFoundIssue.Id():          shellNotFoundIssue,
		projectDiscoveryFailedIssue.Id(): projectDiscoveryFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
