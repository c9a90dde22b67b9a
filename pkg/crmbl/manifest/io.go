package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses a manifest file. Callers that can proceed without a
// manifest (the scanner) should treat any error as "no manifest".
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Directories == nil {
		m.Directories = make(map[string]DirectoryEntry)
	}
	return &m, nil
}

// Save writes the manifest as indented JSON. The write is atomic: data goes
// to a temp file first and is renamed into place.
func Save(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}
