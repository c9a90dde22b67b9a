// Package scanner enumerates directories under a root and reconciles them
// against the persisted manifest, producing the new/missing/unchanged drift
// sets.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/google/uuid"
	"github.com/jamesainslie/crmbl/pkg/crmbl/logging"
	"github.com/jamesainslie/crmbl/pkg/crmbl/manifest"
)

// logger is the package-level logger for scan operations.
var logger = logging.Get("scanner")

// Stats holds the derived counts for one scan.
type Stats struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	Missing    int `json:"missing"`
	Documented int `json:"documented"`
}

// Result is the outcome of one comparison pass between the live directory
// set and the manifest. It is ephemeral: written out for downstream
// consumption but never authoritative state.
type Result struct {
	ID            string    `json:"id"`
	GeneratedAt   time.Time `json:"generatedAt"`
	NewDirs       []string  `json:"newDirs"`
	MissingDirs   []string  `json:"missingDirs"`
	UnchangedDirs []string  `json:"unchangedDirs"`
	Stats         Stats     `json:"stats"`
	Warnings      []string  `json:"warnings,omitempty"`
}

// Scanner performs the scan/compare pass.
type Scanner struct {
	opts    Options
	matcher *IgnoreMatcher

	mu       sync.Mutex
	dirs     map[string]struct{}
	warnings []string
}

// New creates a Scanner for the given options.
func New(opts Options) *Scanner {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Scanner{
		opts:    opts,
		matcher: NewIgnoreMatcher(opts.Ignore),
		dirs:    make(map[string]struct{}),
	}
}

// Scan enumerates the tree, loads the manifest, and computes the drift sets.
// Enumeration completes in full before comparison begins. Unreadable entries
// are skipped with a warning; a missing root yields an empty current set.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	existing := s.loadExistingDirs()

	if err := s.walk(ctx); err != nil {
		return nil, err
	}

	current := s.withAncestors()

	newDirs := make([]string, 0)
	unchanged := make([]string, 0)
	for dir := range current {
		if _, ok := existing[dir]; ok {
			unchanged = append(unchanged, dir)
		} else {
			newDirs = append(newDirs, dir)
		}
	}

	missing := make([]string, 0)
	for dir := range existing {
		if _, ok := current[dir]; !ok {
			missing = append(missing, dir)
		}
	}

	sort.Strings(newDirs)
	sort.Strings(missing)
	sort.Strings(unchanged)

	result := &Result{
		ID:            uuid.NewString(),
		GeneratedAt:   s.opts.Clock(),
		NewDirs:       newDirs,
		MissingDirs:   missing,
		UnchangedDirs: unchanged,
		Stats: Stats{
			Total:      len(current),
			New:        len(newDirs),
			Missing:    len(missing),
			Documented: len(unchanged),
		},
		Warnings: s.warnings,
	}

	logger.Info("scan complete",
		"root", s.opts.Root,
		"total", result.Stats.Total,
		"new", result.Stats.New,
		"missing", result.Stats.Missing)

	return result, nil
}

// loadExistingDirs reads the manifest keys, degrading to an empty set on any
// read or parse failure. A corrupt manifest must not block re-scanning.
func (s *Scanner) loadExistingDirs() map[string]struct{} {
	existing := make(map[string]struct{})

	m, err := manifest.Load(s.opts.ManifestPath)
	if err != nil {
		logger.Debug("manifest unavailable, treating as empty", "path", s.opts.ManifestPath, "error", err)
		return existing
	}
	for dir := range m.Directories {
		existing[dir] = struct{}{}
	}
	return existing
}

// walk enumerates directories under the root. The traversal is kept
// sequential (one worker) so enumeration is deterministic and fully complete
// before comparison starts.
func (s *Scanner) walk(ctx context.Context) error {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return err
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		s.addWarning(root, "root path not found, nothing to scan")
		return nil
	}

	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	walkErr := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			s.addWarning(path, err.Error())
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return fs.SkipDir
		}
		if s.matcher.MatchSegment(name) {
			return fs.SkipDir
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			s.addWarning(path, relErr.Error())
			return nil
		}

		s.mu.Lock()
		s.dirs[normalize(rel)] = struct{}{}
		s.mu.Unlock()
		return nil
	})

	if walkErr != nil && !os.IsNotExist(walkErr) {
		return walkErr
	}
	return nil
}

// withAncestors returns the directory set with every ancestor chain
// materialized: an included leaf always implies its containing directories.
// Ignore rules were applied during the walk, before this backfill, so an
// ignored subtree can never be resurrected here.
func (s *Scanner) withAncestors() map[string]struct{} {
	out := make(map[string]struct{}, len(s.dirs))
	for dir := range s.dirs {
		out[dir] = struct{}{}
		for parent := parentPath(dir); parent != ""; parent = parentPath(parent) {
			out[parent] = struct{}{}
		}
	}
	return out
}

// addWarning records a per-entry traversal problem without aborting the scan.
func (s *Scanner) addWarning(path, msg string) {
	s.mu.Lock()
	s.warnings = append(s.warnings, path+": "+msg)
	s.mu.Unlock()
	logger.Warn("skipping entry", "path", path, "reason", msg)
}

// normalize converts a root-relative path to forward-slash, leading-slash form.
func normalize(rel string) string {
	return "/" + filepath.ToSlash(rel)
}

// parentPath returns the parent of a normalized path, or "" at the top level.
func parentPath(dir string) string {
	idx := strings.LastIndex(dir, "/")
	if idx <= 0 {
		return ""
	}
	return dir[:idx]
}
