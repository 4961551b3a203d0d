// Package types defines the data structures shared across pagenav packages.
package types

type (
	// ParsedNote represents a markdown note split at its frontmatter.
	ParsedNote struct {
		Frontmatter     map[string]any `json:"frontmatter"`
		Content         string         `json:"content"`
		OriginalContent string         `json:"originalContent"`
		HasFrontmatter  bool           `json:"hasFrontmatter"`
		BodyOffset      int            `json:"bodyOffset"`
	}

	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		IgnoredPatterns   []string `json:"ignoredPatterns"`
		AllowedExtensions []string `json:"allowedExtensions"`
	}
)
