// Package frontmatter locates and decodes the YAML frontmatter of a note.
package frontmatter

import (
	"strings"

	"github.com/taigrr/obsidian-pagenav/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultOptOutKey is the frontmatter key that disables navigation upkeep
// when set to false.
const DefaultOptOutKey = "navigation"

// Handler parses frontmatter.
type Handler struct {
	optOutKey string
}

// New creates a Handler using DefaultOptOutKey.
func New() *Handler {
	return &Handler{optOutKey: DefaultOptOutKey}
}

// Parse splits a note into frontmatter and body. Content without a well-formed
// frontmatter block is returned whole as the body with BodyOffset 0.
func (h *Handler) Parse(content string) types.ParsedNote {
	result := types.ParsedNote{
		Frontmatter:     make(map[string]any),
		Content:         content,
		OriginalContent: content,
	}

	yamlStart, yamlEnd, bodyStart, ok := locate(content)
	if !ok {
		return result
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(content[yamlStart:yamlEnd]), &fm); err != nil {
		// Not YAML, so it's just a thematic break at the top of the note.
		return result
	}
	if fm != nil {
		result.Frontmatter = fm
	}
	result.HasFrontmatter = true
	result.BodyOffset = bodyStart
	result.Content = content[bodyStart:]
	return result
}

// locate finds the frontmatter block at the top of content. The YAML text
// spans [yamlStart, yamlEnd) and the note body begins at bodyStart. Both LF and
// CRLF delimiters are accepted.
func locate(content string) (yamlStart, yamlEnd, bodyStart int, ok bool) {
	var nl string
	switch {
	case strings.HasPrefix(content, "---\n"):
		nl = "\n"
	case strings.HasPrefix(content, "---\r\n"):
		nl = "\r\n"
	default:
		return 0, 0, 0, false
	}

	yamlStart = len("---") + len(nl)
	rest := content[yamlStart:]
	closing := nl + "---" + nl
	switch {
	case strings.HasPrefix(rest, "---"+nl):
		return yamlStart, yamlStart, yamlStart + len("---") + len(nl), true
	case rest == "---":
		return yamlStart, yamlStart, len(content), true
	}
	if i := strings.Index(rest, closing); i >= 0 {
		return yamlStart, yamlStart + i, yamlStart + i + len(closing), true
	}
	if strings.HasSuffix(rest, nl+"---") {
		return yamlStart, len(content) - len(nl+"---"), len(content), true
	}
	return 0, 0, 0, false
}

// BodyOffset returns the byte offset where the note body starts.
func (h *Handler) BodyOffset(content string) int {
	return h.Parse(content).BodyOffset
}

// NavigationEnabled reports whether the note allows its navigation block to be
// maintained. Only an explicit boolean false opts out.
func (h *Handler) NavigationEnabled(content string) bool {
	note := h.Parse(content)
	if v, ok := note.Frontmatter[h.optOutKey].(bool); ok {
		return v
	}
	return true
}
