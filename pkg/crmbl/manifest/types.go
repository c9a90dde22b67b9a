// Package manifest defines the persisted directory manifest and the
// operations that create, validate, and maintain it.
package manifest

import "time"

// ChangeFrequency describes how often a directory's contents change.
type ChangeFrequency string

const (
	// FreqStable marks directories that rarely change.
	FreqStable ChangeFrequency = "Stable"
	// FreqModerate marks directories with occasional changes.
	FreqModerate ChangeFrequency = "Moderate"
	// FreqFrequent marks directories under active development.
	FreqFrequent ChangeFrequency = "Frequently Modified"
	// FreqUnknown is the default when no frequency has been recorded.
	FreqUnknown ChangeFrequency = "Unknown"
)

// Valid reports whether f is one of the four known frequency values.
func (f ChangeFrequency) Valid() bool {
	switch f {
	case FreqStable, FreqModerate, FreqFrequent, FreqUnknown:
		return true
	}
	return false
}

// Clock produces timestamps for manifest stamping. Injected so tests can
// assert exact values.
type Clock func() time.Time

// KeyFile pairs a notable file with a short description of its role.
type KeyFile struct {
	File        string `json:"file"`
	Description string `json:"description"`
}

// DirectoryEntry holds the documentation metadata recorded for one directory.
type DirectoryEntry struct {
	Purpose         string          `json:"purpose"`
	Complexity      int             `json:"complexity"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency"`
	EntryPoints     []string        `json:"entryPoints"`
	InternalDeps    []string        `json:"internalDeps"`
	ExternalDeps    []string        `json:"externalDeps"`
	ReadmePath      string          `json:"readmePath"`
	KeyFiles        []KeyFile       `json:"keyFiles"`
	Subdirectories  []string        `json:"subdirectories"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// Manifest is the persisted mapping of directory paths to their entries.
// Keys are root-relative paths with a leading slash.
type Manifest struct {
	Generated   time.Time                 `json:"generated"`
	Directories map[string]DirectoryEntry `json:"directories"`
}
