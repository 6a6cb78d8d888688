// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	if CommandFailedId != 1 {
		t.Errorf("CommandFailedId = %d, want 1", CommandFailedId)
	}
	for id := CommandFailedId; id <= ProjectDiscoveryFailedId; id++ {
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(ProjectDiscoveryFailedId) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), ProjectDiscoveryFailedId)
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
		if strings.TrimSpace(string(v.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", v.Id())
		}
	}
}

func TestIssue_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   Id
		want string
	}{
		{CommandFailedId, "A task command failed!"},
		{ToolUnavailableId, "A required tool is not installed!"},
		{ConflictingFormattersId, "Conflicting formatter options!"},
		{ConfigLoadFailedId, "Failed to load configuration!"},
		{ShellNotFoundId, "Shell not found!"},
		{ProjectDiscoveryFailedId, "Failed to detect the project layout!"},
	}
	for _, tt := range tests {
		issue := Get(tt.id)
		if !strings.Contains(string(issue.MarkdownMsg()), tt.want) {
			t.Errorf("Get(%d) should contain %q", tt.id, tt.want)
		}
	}

	if Get(0) != nil {
		t.Error("Get(0) should return nil")
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	issue := Get(ToolUnavailableId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("expected doc links")
	}
	links[0] = "modified"
	if issue.DocLinks()[0] == "modified" {
		t.Error("DocLinks() should return a clone")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(ConfigLoadFailedId).Markdown()
	if !strings.Contains(md, "## See also\n- <https://cuelang.org/docs/>\n") {
		t.Errorf("Markdown() should list external links, got:\n%s", md)
	}

	md = Get(ShellNotFoundId).Markdown()
	if strings.Contains(md, "See also") {
		t.Error("Markdown() should not add a See also section without links")
	}
}

// Render swaps the package-level renderer, so it is not parallel.
func TestIssue_Render(t *testing.T) {
	original := render
	defer func() { render = original }()

	var gotIn, gotStyle string
	render = func(in, stylePath string) (string, error) {
		gotIn, gotStyle = in, stylePath
		return "rendered", nil
	}

	issue := Get(CommandFailedId)
	out, err := issue.Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != "rendered" || gotStyle != "notty" {
		t.Errorf("Render() = %q with style %q", out, gotStyle)
	}
	if gotIn != issue.Markdown() {
		t.Error("Render() should render Markdown()")
	}

	render = func(string, string) (string, error) { return "", errors.New("bad style") }
	if _, err := issue.Render("missing.json"); err == nil {
		t.Error("Render() should return renderer errors")
	}
}

func TestIssue_RenderWithGlamour(t *testing.T) {
	t.Parallel()

	out, err := Get(ConflictingFormattersId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "Conflicting formatter options!") {
		t.Errorf("rendered output should contain the heading, got:\n%s", out)
	}
}
