package navigation

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Header opens every navigation block.
const Header = "### Navigation"

// Links are the targets rendered into a navigation block.
type Links struct {
	Parent   string
	Children []string
}

// Render formats links as a navigation block, one wiki link per line,
// parent first.
func Render(links Links) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	writeLink(&b, links.Parent)
	for _, child := range links.Children {
		writeLink(&b, child)
	}
	return b.String()
}

func writeLink(b *strings.Builder, target string) {
	b.WriteString("[[")
	b.WriteString(target)
	b.WriteString("]]\n")
}

// FindSection returns the half-open byte range of the block opened by marker.
// The block starts at the first line consisting of marker (trailing blanks
// allowed) outside fenced code, and ends before the next heading line, the
// next blank line, or the end of content.
func FindSection(content, marker string) (start, end int, ok bool) {
	start = -1
	fence := ""
	for off := 0; off < len(content); {
		line, next := lineAt(content, off)
		switch {
		case fence != "":
			if fenceOf(line) == fence {
				fence = ""
			}
		case start < 0:
			if f := fenceOf(line); f != "" {
				fence = f
			} else if strings.HasPrefix(line, marker) && strings.TrimSpace(line[len(marker):]) == "" {
				start = off
			}
		case strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "":
			return start, off, true
		}
		off = next
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, len(content), true
}

// fenceOf returns the fence a code fence line opens or closes, or "".
func fenceOf(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, f := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, f) {
			return f
		}
	}
	return ""
}

// lineAt returns the line starting at off without its newline and the offset
// of the following line.
func lineAt(content string, off int) (string, int) {
	i := strings.IndexByte(content[off:], '\n')
	if i < 0 {
		return content[off:], len(content)
	}
	return content[off : off+i], off + i + 1
}

// Merge puts block into content. An existing block is replaced in place;
// otherwise block and a blank line are inserted at insertAt, which callers
// use to keep frontmatter on top.
func Merge(content, block string, insertAt int) string {
	block = strings.TrimRight(block, " \t\r\n")
	if start, end, ok := FindSection(content, Header); ok {
		return content[:start] + block + "\n" + content[end:]
	}
	insertAt = min(max(insertAt, 0), len(content))
	return content[:insertAt] + block + "\n\n" + content[insertAt:]
}

// sortDocuments orders docs by basename the way a file explorer does:
// locale-aware with digit runs compared numerically.
func sortDocuments(docs []*Document) []*Document {
	c := collate.New(language.Und, collate.Numeric)
	sorted := make([]*Document, len(docs))
	copy(sorted, docs)
	slices.SortStableFunc(sorted, func(a, b *Document) int {
		if r := c.CompareString(a.Basename, b.Basename); r != 0 {
			return r
		}
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}
