// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		ModuleNotFoundId,
		InvalidIdentityId,
		DirectoryNotFoundId,
		NotAModuleId,
		InvalidManifestId,
		InvalidCriteriaId,
		ConfigLoadFailedId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if ModuleNotFoundId != 1 {
		t.Errorf("ModuleNotFoundId = %d, want 1", ModuleNotFoundId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ModuleNotFoundId, false, "Module not found"},
		{InvalidIdentityId, false, "Invalid module identity"},
		{DirectoryNotFoundId, false, "Directory not found"},
		{NotAModuleId, false, "Not a module"},
		{InvalidManifestId, false, "Invalid module manifest"},
		{InvalidCriteriaId, false, "Invalid match criteria"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{PermissionDeniedId, false, "Permission denied"},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, issue.Id())
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) != 8 {
		t.Fatalf("Values() returned %d issues, want 8", len(issues))
	}
	for i, issue := range issues {
		if issue.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), i+1)
		}
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	issue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	links := issue.DocLinks()
	links[0] = "modified"
	if issue.DocLinks()[0] != "https://docs.example.com" {
		t.Error("DocLinks() should return a clone")
	}
	ext := issue.ExtLinks()
	ext[0] = "modified"
	if issue.ExtLinks()[0] != "https://external.example.com" {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	withLinks := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
	}
	rendered, err := withLinks.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "See also") || !strings.Contains(rendered, "https://docs.example.com") {
		t.Errorf("Render() with links = %q, want a See also section", rendered)
	}
	if gotStyle != "notty" {
		t.Errorf("Render(\"\") style = %q, want notty", gotStyle)
	}

	noLinks := &Issue{id: Id(9998), mdMsg: "# Test Issue\n\nNo links here."}
	rendered, err = noLinks.Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
	if gotStyle != "dark" {
		t.Errorf("Render(\"dark\") style = %q", gotStyle)
	}
}

func TestAllIssuesRenderWithGlamour(t *testing.T) {
	for _, issue := range Values() {
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
