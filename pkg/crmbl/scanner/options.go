package scanner

import "github.com/jamesainslie/crmbl/pkg/crmbl/manifest"

// Options configures a scan.
type Options struct {
	// Root is the directory tree to enumerate.
	Root string

	// Ignore contains glob patterns matched against path segments.
	// A matching directory and its whole subtree are excluded.
	Ignore []string

	// ManifestPath is the persisted manifest to compare against.
	// A missing or unreadable manifest is treated as empty.
	ManifestPath string

	// Clock stamps the result. Defaults to time.Now.
	Clock manifest.Clock
}
