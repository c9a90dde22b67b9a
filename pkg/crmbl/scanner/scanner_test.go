package scanner

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/jamesainslie/crmbl/pkg/crmbl/manifest"
)

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock(t time.Time) manifest.Clock {
	return func() time.Time { return t }
}

// makeTree creates the given directories under a temp root and returns it.
func makeTree(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// writeManifest persists a manifest with entries for the given paths.
func writeManifest(t *testing.T, path string, dirs ...string) {
	t.Helper()
	m := manifest.NewEmpty(fixedClock(testTime))
	for _, dir := range dirs {
		m = manifest.Update(m, dir, manifest.DirectoryEntry{}, fixedClock(testTime))
	}
	if err := manifest.Save(m, path); err != nil {
		t.Fatal(err)
	}
}

func scan(t *testing.T, opts Options) *Result {
	t.Helper()
	result, err := New(opts).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	return result
}

func TestScan_IgnorePatterns(t *testing.T) {
	root := makeTree(t, "src", "src/api", "node_modules/pkg")

	result := scan(t, Options{
		Root:         root,
		Ignore:       []string{"node_modules"},
		ManifestPath: filepath.Join(root, "crmbl-map.json"),
	})

	wantNew := []string{"/src", "/src/api"}
	if !reflect.DeepEqual(result.NewDirs, wantNew) {
		t.Errorf("NewDirs = %v, want %v", result.NewDirs, wantNew)
	}
	if len(result.MissingDirs) != 0 {
		t.Errorf("MissingDirs = %v, want empty", result.MissingDirs)
	}

	want := Stats{Total: 2, New: 2, Missing: 0, Documented: 0}
	if result.Stats != want {
		t.Errorf("Stats = %+v, want %+v", result.Stats, want)
	}
}

func TestScan_Drift(t *testing.T) {
	root := makeTree(t, "src", "new")
	manifestPath := filepath.Join(t.TempDir(), "crmbl-map.json")
	writeManifest(t, manifestPath, "/src", "/old")

	result := scan(t, Options{Root: root, ManifestPath: manifestPath})

	if !reflect.DeepEqual(result.NewDirs, []string{"/new"}) {
		t.Errorf("NewDirs = %v, want [/new]", result.NewDirs)
	}
	if !reflect.DeepEqual(result.MissingDirs, []string{"/old"}) {
		t.Errorf("MissingDirs = %v, want [/old]", result.MissingDirs)
	}
	if !reflect.DeepEqual(result.UnchangedDirs, []string{"/src"}) {
		t.Errorf("UnchangedDirs = %v, want [/src]", result.UnchangedDirs)
	}
}

func TestScan_CorruptManifestTreatedAsEmpty(t *testing.T) {
	root := makeTree(t, "src")
	manifestPath := filepath.Join(t.TempDir(), "crmbl-map.json")
	if err := os.WriteFile(manifestPath, []byte("{definitely not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := scan(t, Options{Root: root, ManifestPath: manifestPath})

	if !reflect.DeepEqual(result.NewDirs, []string{"/src"}) {
		t.Errorf("NewDirs = %v, want [/src]", result.NewDirs)
	}
	if len(result.MissingDirs) != 0 {
		t.Errorf("MissingDirs = %v, want empty", result.MissingDirs)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "crmbl-map.json")
	writeManifest(t, manifestPath, "/src")

	result := scan(t, Options{
		Root:         filepath.Join(t.TempDir(), "does-not-exist"),
		ManifestPath: manifestPath,
	})

	if result.Stats.Total != 0 {
		t.Errorf("Total = %d, want 0", result.Stats.Total)
	}
	if !reflect.DeepEqual(result.MissingDirs, []string{"/src"}) {
		t.Errorf("MissingDirs = %v, want [/src]", result.MissingDirs)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the missing root")
	}
}

func TestScan_HiddenDirsSkipped(t *testing.T) {
	root := makeTree(t, "src", ".git/objects", ".idea")

	result := scan(t, Options{Root: root, ManifestPath: filepath.Join(root, "m.json")})

	if !reflect.DeepEqual(result.NewDirs, []string{"/src"}) {
		t.Errorf("NewDirs = %v, want [/src]", result.NewDirs)
	}
}

func TestScan_AncestorsAlwaysPresent(t *testing.T) {
	root := makeTree(t, "a/b/c")

	result := scan(t, Options{Root: root, ManifestPath: filepath.Join(root, "m.json")})

	want := []string{"/a", "/a/b", "/a/b/c"}
	if !reflect.DeepEqual(result.NewDirs, want) {
		t.Errorf("NewDirs = %v, want %v", result.NewDirs, want)
	}
}

func TestScan_IgnoredAncestorExcludesSubtree(t *testing.T) {
	root := makeTree(t, "vendor/lib/util", "src")

	result := scan(t, Options{
		Root:         root,
		Ignore:       []string{"vendor"},
		ManifestPath: filepath.Join(root, "m.json"),
	})

	// Nothing under vendor may leak back in via ancestor backfill.
	for _, dir := range result.NewDirs {
		if dir == "/vendor" || dir == "/vendor/lib" || dir == "/vendor/lib/util" {
			t.Errorf("ignored directory %s present in result", dir)
		}
	}
	if !reflect.DeepEqual(result.NewDirs, []string{"/src"}) {
		t.Errorf("NewDirs = %v, want [/src]", result.NewDirs)
	}
}

func TestScan_PartitionInvariants(t *testing.T) {
	root := makeTree(t, "src", "src/api", "docs", "new")
	manifestPath := filepath.Join(t.TempDir(), "crmbl-map.json")
	writeManifest(t, manifestPath, "/src", "/docs", "/gone")

	result := scan(t, Options{Root: root, ManifestPath: manifestPath})

	assertSortedUnique(t, "NewDirs", result.NewDirs)
	assertSortedUnique(t, "MissingDirs", result.MissingDirs)
	assertSortedUnique(t, "UnchangedDirs", result.UnchangedDirs)

	// New and unchanged are disjoint; missing never overlaps current dirs.
	seen := make(map[string]string)
	for _, d := range result.NewDirs {
		seen[d] = "new"
	}
	for _, d := range result.UnchangedDirs {
		if prev, ok := seen[d]; ok {
			t.Errorf("%s in both %s and unchanged", d, prev)
		}
		seen[d] = "unchanged"
	}
	for _, d := range result.MissingDirs {
		if prev, ok := seen[d]; ok {
			t.Errorf("%s in both %s and missing", d, prev)
		}
	}

	if result.Stats.Total != result.Stats.New+result.Stats.Documented {
		t.Errorf("total %d != new %d + documented %d",
			result.Stats.Total, result.Stats.New, result.Stats.Documented)
	}
}

func TestScan_Idempotent(t *testing.T) {
	root := makeTree(t, "src", "docs")
	manifestPath := filepath.Join(t.TempDir(), "crmbl-map.json")
	writeManifest(t, manifestPath, "/src")

	opts := Options{Root: root, ManifestPath: manifestPath, Clock: fixedClock(testTime)}
	first := scan(t, opts)
	second := scan(t, opts)

	if !reflect.DeepEqual(first.NewDirs, second.NewDirs) ||
		!reflect.DeepEqual(first.MissingDirs, second.MissingDirs) ||
		!reflect.DeepEqual(first.UnchangedDirs, second.UnchangedDirs) {
		t.Error("two scans over an unchanged tree produced different sets")
	}
	if first.Stats != second.Stats {
		t.Errorf("stats differ: %+v vs %+v", first.Stats, second.Stats)
	}
}

func TestSaveLoadResult(t *testing.T) {
	root := makeTree(t, "src")
	result := scan(t, Options{Root: root, ManifestPath: filepath.Join(root, "m.json")})

	path := filepath.Join(t.TempDir(), "scan-results.json")
	if err := SaveResult(result, path); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	loaded, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.NewDirs, result.NewDirs) {
		t.Errorf("round-tripped NewDirs = %v, want %v", loaded.NewDirs, result.NewDirs)
	}
	if loaded.ID != result.ID {
		t.Errorf("round-tripped ID = %q, want %q", loaded.ID, result.ID)
	}
}

func TestSaveResult_WriteFailurePropagates(t *testing.T) {
	root := makeTree(t, "src")
	result := scan(t, Options{Root: root, ManifestPath: filepath.Join(root, "m.json")})

	err := SaveResult(result, filepath.Join(t.TempDir(), "no", "such", "dir", "out.json"))
	if err == nil {
		t.Error("SaveResult() to unwritable path returned nil error")
	}
}

func assertSortedUnique(t *testing.T, name string, dirs []string) {
	t.Helper()
	if !sort.StringsAreSorted(dirs) {
		t.Errorf("%s not sorted: %v", name, dirs)
	}
	for i := 1; i < len(dirs); i++ {
		if dirs[i] == dirs[i-1] {
			t.Errorf("%s contains duplicate %q", name, dirs[i])
		}
	}
}
