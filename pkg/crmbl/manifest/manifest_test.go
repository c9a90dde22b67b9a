package manifest

import (
	"encoding/json"
	"testing"
	"time"
)

// fixedClock returns a Clock pinned to a known instant.
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestNewEmpty(t *testing.T) {
	t.Parallel()

	m := NewEmpty(fixedClock(testTime))

	if !m.Generated.Equal(testTime) {
		t.Errorf("Generated = %v, want %v", m.Generated, testTime)
	}
	if m.Directories == nil {
		t.Fatal("Directories is nil, want empty map")
	}
	if len(m.Directories) != 0 {
		t.Errorf("Directories has %d entries, want 0", len(m.Directories))
	}
}

func TestNewEntry_Defaults(t *testing.T) {
	t.Parallel()

	e := NewEntry(fixedClock(testTime))

	if e.Purpose != "" {
		t.Errorf("Purpose = %q, want empty", e.Purpose)
	}
	if e.Complexity != 1 {
		t.Errorf("Complexity = %d, want 1", e.Complexity)
	}
	if e.ChangeFrequency != FreqUnknown {
		t.Errorf("ChangeFrequency = %q, want %q", e.ChangeFrequency, FreqUnknown)
	}
	if e.EntryPoints == nil || len(e.EntryPoints) != 0 {
		t.Errorf("EntryPoints = %v, want empty slice", e.EntryPoints)
	}
	if e.KeyFiles == nil || len(e.KeyFiles) != 0 {
		t.Errorf("KeyFiles = %v, want empty slice", e.KeyFiles)
	}
	if !e.LastUpdated.Equal(testTime) {
		t.Errorf("LastUpdated = %v, want %v", e.LastUpdated, testTime)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("merges partial entry over defaults", func(t *testing.T) {
		t.Parallel()
		m := NewEmpty(fixedClock(testTime))

		later := testTime.Add(time.Hour)
		m = Update(m, "/src", DirectoryEntry{Purpose: "source code", Complexity: 3}, fixedClock(later))

		entry, ok := m.Directories["/src"]
		if !ok {
			t.Fatal("entry for /src not created")
		}
		if entry.Purpose != "source code" {
			t.Errorf("Purpose = %q, want %q", entry.Purpose, "source code")
		}
		if entry.Complexity != 3 {
			t.Errorf("Complexity = %d, want 3", entry.Complexity)
		}
		if entry.ChangeFrequency != FreqUnknown {
			t.Errorf("ChangeFrequency = %q, want default %q", entry.ChangeFrequency, FreqUnknown)
		}
		if !entry.LastUpdated.Equal(later) {
			t.Errorf("LastUpdated = %v, want %v", entry.LastUpdated, later)
		}
		if !m.Generated.Equal(later) {
			t.Errorf("Generated = %v, want %v", m.Generated, later)
		}
	})

	t.Run("preserves existing fields not present in the partial", func(t *testing.T) {
		t.Parallel()
		m := NewEmpty(fixedClock(testTime))
		m = Update(m, "/src", DirectoryEntry{Purpose: "source code", ReadmePath: "src/README.md"}, fixedClock(testTime))

		m = Update(m, "/src", DirectoryEntry{Complexity: 4}, fixedClock(testTime))

		entry := m.Directories["/src"]
		if entry.Purpose != "source code" {
			t.Errorf("Purpose = %q, want preserved %q", entry.Purpose, "source code")
		}
		if entry.ReadmePath != "src/README.md" {
			t.Errorf("ReadmePath = %q, want preserved", entry.ReadmePath)
		}
		if entry.Complexity != 4 {
			t.Errorf("Complexity = %d, want 4", entry.Complexity)
		}
	})

	t.Run("nil manifest starts fresh", func(t *testing.T) {
		t.Parallel()
		m := Update(nil, "/docs", DirectoryEntry{Purpose: "documentation"}, fixedClock(testTime))

		if m == nil {
			t.Fatal("Update(nil, ...) returned nil")
		}
		if _, ok := m.Directories["/docs"]; !ok {
			t.Error("entry for /docs not created on fresh manifest")
		}
	})
}

func TestRemoveDirectories(t *testing.T) {
	t.Parallel()

	t.Run("deletes keys and refreshes generated", func(t *testing.T) {
		t.Parallel()
		m := NewEmpty(fixedClock(testTime))
		m = Update(m, "/src", DirectoryEntry{}, fixedClock(testTime))
		m = Update(m, "/old", DirectoryEntry{}, fixedClock(testTime))

		later := testTime.Add(time.Minute)
		m = RemoveDirectories(m, []string{"/old", "/never-existed"}, fixedClock(later))

		if _, ok := m.Directories["/old"]; ok {
			t.Error("/old not removed")
		}
		if _, ok := m.Directories["/src"]; !ok {
			t.Error("/src removed unexpectedly")
		}
		if !m.Generated.Equal(later) {
			t.Errorf("Generated = %v, want %v", m.Generated, later)
		}
	})

	t.Run("nil manifest is a no-op", func(t *testing.T) {
		t.Parallel()
		if got := RemoveDirectories(nil, []string{"/x"}, fixedClock(testTime)); got != nil {
			t.Errorf("RemoveDirectories(nil) = %v, want nil", got)
		}
	})
}

func TestRoundTrip_ValidatesClean(t *testing.T) {
	t.Parallel()

	m := NewEmpty(fixedClock(testTime))
	m = Update(m, "/src", DirectoryEntry{
		Purpose:         "source code",
		Complexity:      2,
		ChangeFrequency: FreqModerate,
		EntryPoints:     []string{"main.go"},
		KeyFiles:        []KeyFile{{File: "main.go", Description: "entry point"}},
	}, fixedClock(testTime))

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	res := ValidateBytes(data)
	if !res.Valid {
		t.Errorf("round-tripped manifest invalid: %v", res.Errors)
	}
}
