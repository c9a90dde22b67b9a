package manifest

import "time"

// NewEmpty returns a manifest with the current timestamp and no directories.
func NewEmpty(clock Clock) *Manifest {
	if clock == nil {
		clock = time.Now
	}
	return &Manifest{
		Generated:   clock(),
		Directories: make(map[string]DirectoryEntry),
	}
}

// NewEntry returns a DirectoryEntry with every field set to its
// type-appropriate default: complexity 1, frequency Unknown, empty strings
// and sequences, lastUpdated stamped from the clock.
func NewEntry(clock Clock) DirectoryEntry {
	if clock == nil {
		clock = time.Now
	}
	return DirectoryEntry{
		Purpose:         "",
		Complexity:      1,
		ChangeFrequency: FreqUnknown,
		EntryPoints:     []string{},
		InternalDeps:    []string{},
		ExternalDeps:    []string{},
		ReadmePath:      "",
		KeyFiles:        []KeyFile{},
		Subdirectories:  []string{},
		LastUpdated:     clock(),
	}
}

// Update merges entry over the defaults for path and stamps both the entry
// and the manifest. Zero-valued fields in entry keep their defaults, so a
// partial entry never clears data the caller did not set. A nil manifest is
// treated as a fresh empty one.
func Update(m *Manifest, path string, entry DirectoryEntry, clock Clock) *Manifest {
	if clock == nil {
		clock = time.Now
	}
	if m == nil {
		m = NewEmpty(clock)
	}
	if m.Directories == nil {
		m.Directories = make(map[string]DirectoryEntry)
	}

	merged := NewEntry(clock)
	if existing, ok := m.Directories[path]; ok {
		merged = existing
	}

	if entry.Purpose != "" {
		merged.Purpose = entry.Purpose
	}
	if entry.Complexity != 0 {
		merged.Complexity = entry.Complexity
	}
	if entry.ChangeFrequency != "" {
		merged.ChangeFrequency = entry.ChangeFrequency
	}
	if entry.EntryPoints != nil {
		merged.EntryPoints = entry.EntryPoints
	}
	if entry.InternalDeps != nil {
		merged.InternalDeps = entry.InternalDeps
	}
	if entry.ExternalDeps != nil {
		merged.ExternalDeps = entry.ExternalDeps
	}
	if entry.ReadmePath != "" {
		merged.ReadmePath = entry.ReadmePath
	}
	if entry.KeyFiles != nil {
		merged.KeyFiles = entry.KeyFiles
	}
	if entry.Subdirectories != nil {
		merged.Subdirectories = entry.Subdirectories
	}

	now := clock()
	merged.LastUpdated = now
	m.Directories[path] = merged
	m.Generated = now
	return m
}

// RemoveDirectories deletes the given keys and refreshes the generated
// timestamp. A nil manifest or nil directory mapping is returned unchanged.
func RemoveDirectories(m *Manifest, paths []string, clock Clock) *Manifest {
	if m == nil || m.Directories == nil {
		return m
	}
	if clock == nil {
		clock = time.Now
	}
	for _, p := range paths {
		delete(m.Directories, p)
	}
	m.Generated = clock()
	return m
}
