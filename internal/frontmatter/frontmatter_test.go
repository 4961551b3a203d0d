package frontmatter

import (
	"strings"
	"testing"
)

func TestHandler_ParseWithFrontmatter(t *testing.T) {
	handler := New()

	content := `---
title: Test Note
tags: [test, example]
created: 2023-01-01
---

# Test Note

This is a test note with frontmatter.`

	result := handler.Parse(content)

	if !result.HasFrontmatter {
		t.Fatal("HasFrontmatter = false, want true")
	}
	if result.Frontmatter["title"] != "Test Note" {
		t.Errorf("Frontmatter[title] = %v, want %q", result.Frontmatter["title"], "Test Note")
	}

	tags, ok := result.Frontmatter["tags"].([]any)
	if !ok {
		t.Errorf("Frontmatter[tags] is not []any: %T", result.Frontmatter["tags"])
	} else if len(tags) != 2 || tags[0] != "test" || tags[1] != "example" {
		t.Errorf("Frontmatter[tags] = %v, want [test, example]", tags)
	}

	expectedContent := "# Test Note\n\nThis is a test note with frontmatter."
	if strings.TrimSpace(result.Content) != expectedContent {
		t.Errorf("Content = %q, want %q", strings.TrimSpace(result.Content), expectedContent)
	}
	if content[result.BodyOffset:] != result.Content {
		t.Errorf("BodyOffset = %d does not point at the body", result.BodyOffset)
	}
}

func TestHandler_ParseWithoutFrontmatter(t *testing.T) {
	handler := New()

	content := `# Test Note

This is a test note without frontmatter.`

	result := handler.Parse(content)

	if result.HasFrontmatter {
		t.Error("HasFrontmatter = true, want false")
	}
	if len(result.Frontmatter) != 0 {
		t.Errorf("Frontmatter = %v, want empty map", result.Frontmatter)
	}
	if result.Content != content {
		t.Errorf("Content = %q, want %q", result.Content, content)
	}
}

func TestHandler_BodyOffset(t *testing.T) {
	handler := New()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"no frontmatter", "# Title\n", 0},
		{"empty note", "", 0},
		{"simple", "---\na: 1\n---\nbody", len("---\na: 1\n---\n")},
		{"empty block", "---\n---\nbody", len("---\n---\n")},
		{"block at end", "---\na: 1\n---", len("---\na: 1\n---")},
		{"unterminated", "---\na: 1\nbody", 0},
		{"not yaml", "---\n: : [\n---\nbody", 0},
		{"crlf", "---\r\na: 1\r\n---\r\nbody", len("---\r\na: 1\r\n---\r\n")},
		{"crlf empty block", "---\r\n---\r\nbody", len("---\r\n---\r\n")},
		{"crlf block at end", "---\r\na: 1\r\n---", len("---\r\na: 1\r\n---")},
		{"mixed endings", "---\r\na: 1\n---\nbody", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handler.BodyOffset(tt.content); got != tt.want {
				t.Errorf("BodyOffset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandler_NavigationEnabled(t *testing.T) {
	handler := New()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"no frontmatter", "# Note", true},
		{"key absent", "---\ntags: [a]\n---\n", true},
		{"explicit true", "---\nnavigation: true\n---\n", true},
		{"explicit false", "---\nnavigation: false\n---\n", false},
		{"explicit false crlf", "---\r\nnavigation: false\r\n---\r\n", false},
		{"string is not a boolean", "---\nnavigation: \"false\"\n---\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handler.NavigationEnabled(tt.content); got != tt.want {
				t.Errorf("NavigationEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
