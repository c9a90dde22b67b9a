package scanner

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveResult writes a scan result as indented JSON via a temp-file rename.
// Write failures propagate to the caller: losing scan output silently would
// hide real drift.
func SaveResult(r *Result, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling scan result: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing scan result: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing scan result: %w", err)
	}
	return nil
}

// LoadResult reads a previously saved scan result.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scan result: %w", err)
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing scan result: %w", err)
	}
	return &r, nil
}
