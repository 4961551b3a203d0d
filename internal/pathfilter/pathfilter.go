// Package pathfilter decides which vault paths take part in navigation.
package pathfilter

import (
	"regexp"
	"strings"

	"github.com/taigrr/obsidian-pagenav/internal/types"
)

// PathFilter filters ignored paths and non-note file types.
type PathFilter struct {
	ignored           []*regexp.Regexp
	allowedExtensions []string
}

var defaultIgnored = []string{
	".obsidian/**",
	".git/**",
	".trash/**",
	"node_modules/**",
	".DS_Store",
	"Thumbs.db",
}

var extensionPattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,10}$`)

// New creates a PathFilter. Patterns and extensions in config are added to
// the defaults.
func New(config *types.PathFilterConfig) *PathFilter {
	patterns := defaultIgnored
	pf := &PathFilter{
		allowedExtensions: []string{".md", ".markdown", ".txt"},
	}
	if config != nil {
		patterns = append(append([]string{}, patterns...), config.IgnoredPatterns...)
		pf.allowedExtensions = append(pf.allowedExtensions, config.AllowedExtensions...)
	}
	for _, pattern := range patterns {
		pf.ignored = append(pf.ignored, compileGlob(pattern))
	}
	return pf
}

// compileGlob turns a glob into an anchored regexp: ** crosses directories,
// * and ? stay within one path segment.
func compileGlob(pattern string) *regexp.Regexp {
	expr := regexp.QuoteMeta(normalize(pattern))
	expr = strings.ReplaceAll(expr, `\*\*`, ".*")
	expr = strings.ReplaceAll(expr, `\*`, "[^/]*")
	expr = strings.ReplaceAll(expr, `\?`, "[^/]")
	return regexp.MustCompile("^" + expr + "$")
}

func normalize(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// IsIgnored reports whether path matches an ignore pattern.
func (pf *PathFilter) IsIgnored(path string) bool {
	path = normalize(path)
	for _, re := range pf.ignored {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// IsIgnoredDir reports whether a directory and everything below it is ignored.
func (pf *PathFilter) IsIgnoredDir(path string) bool {
	path = strings.TrimSuffix(normalize(path), "/")
	return pf.IsIgnored(path) || pf.IsIgnored(path+"/")
}

// IsDocument reports whether a regular file at path is a note.
func (pf *PathFilter) IsDocument(path string) bool {
	return !pf.IsIgnored(path) && pf.hasAllowedExtension(path)
}

// IsAllowed checks a path whose kind is unknown. Paths that look like files
// must carry an allowed extension; anything else only has to avoid the
// ignore list.
func (pf *PathFilter) IsAllowed(path string) bool {
	path = normalize(path)
	if pf.IsIgnored(path) {
		return false
	}
	if looksLikeFile(path) {
		return pf.hasAllowedExtension(path)
	}
	return true
}

func (pf *PathFilter) hasAllowedExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range pf.allowedExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// looksLikeFile treats a last segment with a short alphanumeric extension as
// a file. "1. Project" and ".gitignore" are not files by this rule.
func looksLikeFile(path string) bool {
	if strings.HasSuffix(path, "/") {
		return false
	}
	last := path[strings.LastIndex(path, "/")+1:]
	dot := strings.LastIndex(last, ".")
	if dot <= 0 {
		return false
	}
	return extensionPattern.MatchString(last[dot+1:])
}
