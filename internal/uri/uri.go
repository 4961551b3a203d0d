// Package uri builds obsidian:// links to notes.
package uri

import (
	"net/url"
	"strings"
)

// Open returns the obsidian://open URI of a note in the named vault. The
// .md extension is dropped since Obsidian resolves it.
func Open(vaultName, notePath string) string {
	file := strings.TrimSuffix(strings.TrimPrefix(notePath, "/"), ".md")
	return "obsidian://open?vault=" + escape(vaultName) + "&file=" + escape(file)
}

// escape percent-encodes like encodeURIComponent, which is what Obsidian
// itself emits: spaces become %20, slashes are encoded.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
